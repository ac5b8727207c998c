package widgets

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"notesweb/internal/notesweb/events"
)

// TagNotBlank - правило: значение непустое после обрезки пробелов.
const TagNotBlank = "notblank"

// ErrMsgRegisterValidation - ошибка регистрации правила проверки формы.
const ErrMsgRegisterValidation = "failed to register form validation"

// Имена полей формы.
const (
	FieldTitle = "title"
	FieldBody  = "body"
)

// Сообщения об ошибках полей.
const (
	MsgTitleRequired = "Judul catatan tidak boleh kosong."
	MsgBodyRequired  = "Isi catatan tidak boleh kosong."
)

var fieldMessages = map[string]string{
	FieldTitle: MsgTitleRequired,
	FieldBody:  MsgBodyRequired,
}

// FormState - состояние формы создания: значения полей и ошибки по имени поля.
type FormState struct {
	Title  string            `form:"title" validate:"notblank"`
	Body   string            `form:"body" validate:"notblank"`
	Errors map[string]string `form:"-"`
}

// HasErrors сообщает, есть ли в форме ошибки.
func (s FormState) HasErrors() bool {
	return len(s.Errors) > 0
}

// Edit обновляет поле и снимает его ошибку, как только значение стало непустым.
func (s *FormState) Edit(field, value string) {
	switch field {
	case FieldTitle:
		s.Title = value
	case FieldBody:
		s.Body = value
	default:
		return
	}
	if strings.TrimSpace(value) != "" {
		delete(s.Errors, field)
	}
}

// CreationForm проверяет ввод и публикует намерение создать заметку.
// Сама форма в удаленный сервис не обращается.
type CreationForm struct {
	validate *validator.Validate
	intents  *events.CreationIntents
	rejected prometheus.Counter

	now   func() time.Time
	newID func() string
}

// NewCreationForm создает форму. rejected может быть nil.
func NewCreationForm(intents *events.CreationIntents, rejected prometheus.Counter) (*CreationForm, error) {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := fld.Tag.Get("form")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation(TagNotBlank, validators.NotBlank); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgRegisterValidation, err)
	}

	return &CreationForm{
		validate: v,
		intents:  intents,
		rejected: rejected,
		now:      time.Now,
		newID:    uuid.NewString,
	}, nil
}

// Validate возвращает ошибки полей; пустая карта - форма корректна.
func (f *CreationForm) Validate(state FormState) map[string]string {
	errs := map[string]string{}

	err := f.validate.Struct(state)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs[FieldTitle] = MsgTitleRequired
		return errs
	}
	for _, fe := range verrs {
		errs[fe.Field()] = fieldMessages[fe.Field()]
	}
	return errs
}

// Submit проверяет форму. При ошибке возвращает состояние с ошибками и false,
// событие не публикуется. При успехе публикует CreationIntent и возвращает
// очищенное состояние.
func (f *CreationForm) Submit(ctx context.Context, title, body string) (FormState, bool) {
	state := FormState{Title: title, Body: body}

	if errs := f.Validate(state); len(errs) > 0 {
		state.Errors = errs
		if f.rejected != nil {
			f.rejected.Inc()
		}
		return state, false
	}

	f.intents.Publish(ctx, events.CreationIntent{
		ID:    f.newID(),
		Title: title,
		Body:  body,
		Date:  f.now(),
	})

	return FormState{}, true
}
