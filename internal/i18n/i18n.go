package i18n

type Language string

const (
	English Language = "en"
	Russian Language = "ru"
)

var currentLang = English

type Messages struct {
	// Store results
	FillAllFields        string
	InvalidEmail         string
	EmailTaken           string
	InvalidCredentials   string
	FolderNameRequired   string
	FolderNameTooLong    string
	ParentFolderNotFound string
	NoteNotFound         string
	InvalidDeadline      string
	UntitledNote         string
	EmptyNote            string
	Overdue              string
	Saved                string
	SaveError            string

	// General
	Loading string
	Error   string
	Yes     string
	No      string
	None    string
	Unsaved string
	Notes   string
	Folders string
	Help    string
	Exit    string

	// Modes
	ModeNormal string
	ModeEdit   string
	ModeSearch string

	// Panels
	AllNotes       string
	NoNoteSelected string

	// Metadata
	Tags       string
	Deadline   string
	Pinned     string
	Image      string
	CreatedAt  string
	ModifiedAt string

	// Dialogs
	NewFolder           string
	DeleteNote          string
	DeleteConfirm       string
	Search              string
	NotePlaceholder     string
	TitlePlaceholder    string
	FolderPlaceholder   string
	TagsPlaceholder     string
	DeadlinePlaceholder string
	ImagePlaceholder    string
	EditTitle           string
	EditTags            string
	EditDeadline        string
	EditImage           string
	EnterConfirm        string
	EscCancel           string

	// Auth
	Login            string
	Register         string
	Username         string
	Email            string
	Password         string
	PasswordPrompt   string
	SwitchToRegister string
	SwitchToLogin    string
	Registered       string

	// Key help
	HelpTitle   string
	KeyUp       string
	KeyDown     string
	KeyEnter    string
	KeyEdit     string
	KeyEscape   string
	KeySave     string
	KeyNew      string
	KeyNewFold  string
	KeyDelete   string
	KeySearch   string
	KeyQuit     string
	KeyHelp     string
	KeyTab      string
	KeyTitle    string
	KeyTags     string
	KeyDeadline string
	KeyPin      string
	KeyImage    string
	KeyLogout   string
}

var translations = map[Language]Messages{
	English: {
		FillAllFields:        "Please fill in all fields",
		InvalidEmail:         "Invalid email address",
		EmailTaken:           "An account with this email already exists",
		InvalidCredentials:   "Invalid email or password",
		FolderNameRequired:   "Enter a folder name",
		FolderNameTooLong:    "Folder name is too long",
		ParentFolderNotFound: "Parent folder not found",
		NoteNotFound:         "Note not found",
		InvalidDeadline:      "Invalid deadline",
		UntitledNote:         "New note",
		EmptyNote:            "Empty note",
		Overdue:              "Overdue",
		Saved:                "Saved",
		SaveError:            "Save failed",

		Loading: "Loading...",
		Error:   "Error",
		Yes:     "Yes",
		No:      "No",
		None:    "None",
		Unsaved: "Unsaved",
		Notes:   "notes",
		Folders: "Folders",
		Help:    "help",
		Exit:    "quit",

		ModeNormal: "NORMAL",
		ModeEdit:   "EDIT",
		ModeSearch: "SEARCH",

		AllNotes:       "All notes",
		NoNoteSelected: "No note selected",

		Tags:       "Tags",
		Deadline:   "Deadline",
		Pinned:     "Pinned",
		Image:      "Image",
		CreatedAt:  "Created",
		ModifiedAt: "Modified",

		NewFolder:           "New folder",
		DeleteNote:          "Delete note",
		DeleteConfirm:       "Delete \"%s\"?",
		Search:              "Search",
		NotePlaceholder:     "Write your note...",
		TitlePlaceholder:    "Title...",
		FolderPlaceholder:   "Folder name...",
		TagsPlaceholder:     "work, ideas",
		DeadlinePlaceholder: "YYYY-MM-DD",
		ImagePlaceholder:    "/path/to/image.png",
		EditTitle:           "Title",
		EditTags:            "Tags (comma separated)",
		EditDeadline:        "Deadline",
		EditImage:           "Image path",
		EnterConfirm:        "[Enter] Confirm",
		EscCancel:           "[Esc] Cancel",

		Login:            "Log in",
		Register:         "Create account",
		Username:         "Name",
		Email:            "Email",
		Password:         "Password",
		PasswordPrompt:   "Password: ",
		SwitchToRegister: "[Ctrl+R] Create an account",
		SwitchToLogin:    "[Ctrl+R] Back to login",
		Registered:       "Account created, please log in",

		HelpTitle:   "Keyboard shortcuts",
		KeyUp:       "up",
		KeyDown:     "down",
		KeyEnter:    "open",
		KeyEdit:     "edit content",
		KeyEscape:   "back",
		KeySave:     "save",
		KeyNew:      "new note",
		KeyNewFold:  "new folder",
		KeyDelete:   "delete",
		KeySearch:   "search",
		KeyQuit:     "quit",
		KeyHelp:     "help",
		KeyTab:      "next panel",
		KeyTitle:    "edit title",
		KeyTags:     "tags",
		KeyDeadline: "deadline",
		KeyPin:      "pin",
		KeyImage:    "image",
		KeyLogout:   "log out",
	},
	Russian: {
		FillAllFields:        "Заполните все поля",
		InvalidEmail:         "Некорректный email",
		EmailTaken:           "Пользователь с таким email уже существует",
		InvalidCredentials:   "Неверный email или пароль",
		FolderNameRequired:   "Введите название папки",
		FolderNameTooLong:    "Слишком длинное название папки",
		ParentFolderNotFound: "Родительская папка не найдена",
		NoteNotFound:         "Заметка не найдена",
		InvalidDeadline:      "Некорректный дедлайн",
		UntitledNote:         "Новая заметка",
		EmptyNote:            "Пустая заметка",
		Overdue:              "Просрочено",
		Saved:                "Сохранено",
		SaveError:            "Ошибка сохранения",

		Loading: "Загрузка...",
		Error:   "Ошибка",
		Yes:     "Да",
		No:      "Нет",
		None:    "Нет",
		Unsaved: "Не сохранено",
		Notes:   "заметок",
		Folders: "Папки",
		Help:    "помощь",
		Exit:    "выход",

		ModeNormal: "ПРОСМОТР",
		ModeEdit:   "РЕДАКТОР",
		ModeSearch: "ПОИСК",

		AllNotes:       "Все заметки",
		NoNoteSelected: "Заметка не выбрана",

		Tags:       "Теги",
		Deadline:   "Дедлайн",
		Pinned:     "Закреплено",
		Image:      "Изображение",
		CreatedAt:  "Создано",
		ModifiedAt: "Изменено",

		NewFolder:           "Новая папка",
		DeleteNote:          "Удалить заметку",
		DeleteConfirm:       "Удалить «%s»?",
		Search:              "Поиск",
		NotePlaceholder:     "Текст заметки...",
		TitlePlaceholder:    "Заголовок...",
		FolderPlaceholder:   "Название папки...",
		TagsPlaceholder:     "работа, идеи",
		DeadlinePlaceholder: "ГГГГ-ММ-ДД",
		ImagePlaceholder:    "/путь/к/изображению.png",
		EditTitle:           "Заголовок",
		EditTags:            "Теги (через запятую)",
		EditDeadline:        "Дедлайн",
		EditImage:           "Путь к изображению",
		EnterConfirm:        "[Enter] Подтвердить",
		EscCancel:           "[Esc] Отмена",

		Login:            "Войти",
		Register:         "Регистрация",
		Username:         "Имя",
		Email:            "Email",
		Password:         "Пароль",
		PasswordPrompt:   "Пароль: ",
		SwitchToRegister: "[Ctrl+R] Создать аккаунт",
		SwitchToLogin:    "[Ctrl+R] Ко входу",
		Registered:       "Аккаунт создан, войдите",

		HelpTitle:   "Горячие клавиши",
		KeyUp:       "вверх",
		KeyDown:     "вниз",
		KeyEnter:    "открыть",
		KeyEdit:     "редактировать текст",
		KeyEscape:   "назад",
		KeySave:     "сохранить",
		KeyNew:      "новая заметка",
		KeyNewFold:  "новая папка",
		KeyDelete:   "удалить",
		KeySearch:   "поиск",
		KeyQuit:     "выход",
		KeyHelp:     "помощь",
		KeyTab:      "следующая панель",
		KeyTitle:    "заголовок",
		KeyTags:     "теги",
		KeyDeadline: "дедлайн",
		KeyPin:      "закрепить",
		KeyImage:    "изображение",
		KeyLogout:   "выйти",
	},
}

func SetLanguage(lang Language) {
	if _, ok := translations[lang]; ok {
		currentLang = lang
	}
}

func GetLanguage() Language {
	return currentLang
}

func Supported(lang Language) bool {
	_, ok := translations[lang]
	return ok
}

func T() Messages {
	return translations[currentLang]
}
