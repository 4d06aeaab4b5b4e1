package web

import (
	"github.com/kiranshivaraju/healthassist/internal/predict"
	"github.com/kiranshivaraju/healthassist/pkg/models"
)

const RecordsPath = "/records"

// NavItem is one entry of the always-visible menu.
type NavItem struct {
	Label  string
	Href   string
	Active bool
}

// Page carries what the layout needs on every page.
type Page struct {
	Title string
	Nav   []NavItem
}

// NewPage builds the menu with the entry for activePath highlighted.
func NewPage(title string, diseases []*models.Disease, activePath string) Page {
	nav := make([]NavItem, 0, len(diseases)+1)
	for _, d := range diseases {
		href := "/" + d.Slug
		nav = append(nav, NavItem{Label: d.MenuLabel, Href: href, Active: href == activePath})
	}
	nav = append(nav, NavItem{Label: "View Data", Href: RecordsPath, Active: activePath == RecordsPath})
	return Page{Title: title, Nav: nav}
}

// FormView is the data behind a disease prediction page.
type FormView struct {
	Page
	Disease *models.Disease
	Values  map[string]string

	// FieldErrors maps a column to its inline error message.
	FieldErrors map[string]string

	SetupError string
	Error      string

	Record       *models.PredictionRecord
	SavedTo      string
	PersistError string
}

// RecordsView is the data behind the records page.
type RecordsView struct {
	Page
	Sections []predict.Section
}

// ErrorView is a full-page error.
type ErrorView struct {
	Page
	Message string
}
