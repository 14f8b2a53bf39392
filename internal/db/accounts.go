package db

import (
	"strings"

	"github.com/Dezmoral/Askar/internal/crypto"
	"github.com/Dezmoral/Askar/internal/i18n"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"go.uber.org/zap"
)

// DefaultFolderName is the root folder every account starts with.
const DefaultFolderName = "My Notes"

// unknownCredential is verified against when the email is unknown, so both
// failure paths cost one key derivation.
var unknownCredential = strings.Repeat("00", crypto.DefaultSaltSize) + ":" + strings.Repeat("00", crypto.DefaultKeyLen)

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validate(value interface{}, rules ...validation.Rule) error {
	if err := validation.Validate(value, rules...); err != nil {
		return &ValidationError{Message: err.Error()}
	}
	return nil
}

// Register creates an account together with its default root folder.
func (db *DB) Register(username, email, password string) (*PublicAccount, error) {
	t := i18n.T()
	cleanUsername := strings.TrimSpace(username)
	cleanEmail := NormalizeEmail(email)

	required := validation.Required.Error(t.FillAllFields)
	for _, v := range []string{cleanUsername, cleanEmail, strings.TrimSpace(password)} {
		if err := validate(v, required); err != nil {
			return nil, err
		}
	}
	if err := validate(cleanEmail, is.EmailFormat.Error(t.InvalidEmail)); err != nil {
		return nil, err
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	data := db.load()
	for _, a := range data.Accounts {
		if a.Email == cleanEmail {
			return nil, &ConflictError{Message: t.EmailTaken}
		}
	}

	credential, err := db.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	now := db.timestamp()
	account := Account{
		ID:         nextID(&data.Counters.Account),
		Username:   cleanUsername,
		Email:      cleanEmail,
		Credential: credential,
		CreatedAt:  now,
	}
	data.Accounts = append(data.Accounts, account)
	data.Folders = append(data.Folders, Folder{
		ID:        nextID(&data.Counters.Folder),
		OwnerID:   account.ID,
		Name:      DefaultFolderName,
		CreatedAt: now,
	})

	if err := db.persist(data); err != nil {
		return nil, err
	}

	db.logger.Info("account registered", zap.Int64("account_id", account.ID))
	return account.Public(), nil
}

// Login checks the credentials. Unknown email and wrong password produce the
// same error.
func (db *DB) Login(email, password string) (*PublicAccount, error) {
	t := i18n.T()
	cleanEmail := NormalizeEmail(email)

	db.mu.Lock()
	defer db.mu.Unlock()

	data := db.load()
	var account *Account
	for i := range data.Accounts {
		if data.Accounts[i].Email == cleanEmail {
			account = &data.Accounts[i]
			break
		}
	}

	if account == nil {
		db.hasher.Verify(password, unknownCredential)
		return nil, &AuthenticationError{Message: t.InvalidCredentials}
	}
	if !db.hasher.Verify(password, account.Credential) {
		return nil, &AuthenticationError{Message: t.InvalidCredentials}
	}

	return account.Public(), nil
}

// GetAccount returns nil if no account has the id.
func (db *DB) GetAccount(id int64) *PublicAccount {
	db.mu.Lock()
	defer db.mu.Unlock()

	data := db.load()
	for i := range data.Accounts {
		if data.Accounts[i].ID == id {
			return data.Accounts[i].Public()
		}
	}
	return nil
}
