package i18n

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetLanguage(t *testing.T) {
	defer SetLanguage(English)

	SetLanguage(Russian)
	assert.Equal(t, Russian, GetLanguage())
	assert.Equal(t, "Новая заметка", T().UntitledNote)

	SetLanguage(Language("xx"))
	assert.Equal(t, Russian, GetLanguage(), "unknown languages are ignored")
}

func TestCataloguesComplete(t *testing.T) {
	for lang, msgs := range translations {
		v := reflect.ValueOf(msgs)
		for i := 0; i < v.NumField(); i++ {
			assert.NotEmpty(t, v.Field(i).String(), "%s: %s is empty", lang, v.Type().Field(i).Name)
		}
	}
}
