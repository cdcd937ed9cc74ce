package webutil

import (
	"log"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Validator はアプリケーション全体で共有されるバリデータ
var Validator *validator.Validate

// Trans はエラーメッセージ用のトランスレータ
var Trans ut.Translator

// 表示用のフィールド名 (json タグ名 -> ラベル)
var fieldLabels = map[string]string{
	"name":        "Name",
	"email":       "Email",
	"password":    "Password",
	"token":       "Token",
	"is_correct":  "Answer result",
	"grade":       "Grade",
	"subject":     "Subject",
	"question":    "Question",
	"image":       "Image",
	"school_name": "School name",
	"board":       "Board",
	"chapters":    "Chapters",
	"questions":   "Questions",
	"marks":       "Marks",
	"count":       "Count",
}

func fieldLabel(fe validator.FieldError) string {
	if label, ok := fieldLabels[fe.Field()]; ok {
		return label
	}
	return fe.Field()
}

func init() {
	Validator = validator.New()

	// JSONタグ名をフィールド名として使う
	Validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	english := en.New()
	uni := ut.New(english, english)
	var found bool
	Trans, found = uni.GetTranslator("en")
	if !found {
		log.Fatal("translator not found")
	}

	if err := en_translations.RegisterDefaultTranslations(Validator, Trans); err != nil {
		log.Fatal(err)
	}

	// よく使うタグはラベル付きの短い文言に差し替える
	override := func(tag, msg string) {
		Validator.RegisterTranslation(tag, Trans, func(ut ut.Translator) error {
			return ut.Add(tag, msg, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(tag, fieldLabel(fe), fe.Param())
			return t
		})
	}

	override("required", "{0} is required.")
	override("email", "{0} must be a valid email address.")
	override("required_without", "{0} is required when {1} is not provided.")
}
