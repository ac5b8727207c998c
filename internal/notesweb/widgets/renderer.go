// Package widgets содержит виджеты интерфейса: чистые функции от входных данных к HTML.
// Каждый виджет рендерится в собственный declarative shadow root, поэтому стили
// не пересекаются между виджетами.
package widgets

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"notesweb/internal/notesweb/domain/entities"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// EmptyListText показывается, когда активных заметок нет.
const EmptyListText = "Tidak ada catatan."

// Renderer рендерит виджеты из встроенных шаблонов.
type Renderer struct {
	tmpl *template.Template
	loc  *time.Location
}

// CardProps - входные данные карточки заметки.
type CardProps struct {
	ID        string
	Title     string
	Body      string
	CreatedAt time.Time
}

// LoaderProps - входные данные индикатора загрузки.
type LoaderProps struct {
	Visible bool
	Text    string
}

// PageProps - входные данные страницы целиком.
type PageProps struct {
	Loader LoaderProps
	Form   FormState
	List   template.HTML
}

type listProps struct {
	Cards     []CardProps
	EmptyText string
}

// NewRenderer разбирает шаблоны. Даты форматируются в часовом поясе loc.
func NewRenderer(loc *time.Location) (*Renderer, error) {
	if loc == nil {
		loc = time.UTC
	}
	r := &Renderer{loc: loc}

	tmpl, err := template.New("widgets").
		Funcs(template.FuncMap{"longDate": r.longDate}).
		ParseFS(templateFS, "templates/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("parse widget templates: %w", err)
	}
	r.tmpl = tmpl
	return r, nil
}

// CardPropsFrom строит входные данные карточки из заметки.
func CardPropsFrom(n entities.Note) CardProps {
	return CardProps{ID: n.ID, Title: n.Title, Body: n.Body, CreatedAt: n.CreatedAt}
}

// Header рендерит статический заголовок.
func (r *Renderer) Header() (template.HTML, error) {
	return r.render("header", nil)
}

// Loader рендерит индикатор загрузки.
func (r *Renderer) Loader(props LoaderProps) (template.HTML, error) {
	return r.render("loader", props)
}

// NoteCard рендерит одну карточку.
func (r *Renderer) NoteCard(props CardProps) (template.HTML, error) {
	return r.render("note-card", props)
}

// NoteList рендерит список карточек или сообщение о пустом списке.
func (r *Renderer) NoteList(notes []entities.Note) (template.HTML, error) {
	cards := make([]CardProps, 0, len(notes))
	for _, n := range notes {
		cards = append(cards, CardPropsFrom(n))
	}
	return r.render("note-list", listProps{Cards: cards, EmptyText: EmptyListText})
}

// Form рендерит форму создания в заданном состоянии.
func (r *Renderer) Form(state FormState) (template.HTML, error) {
	return r.render("note-form", state)
}

// Page рендерит страницу целиком.
func (r *Renderer) Page(props PageProps) (template.HTML, error) {
	return r.render("page", props)
}

func (r *Renderer) render(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	//nolint:gosec // вывод html/template уже экранирован
	return template.HTML(buf.String()), nil
}

func (r *Renderer) longDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return FormatLongDate(t.In(r.loc))
}
