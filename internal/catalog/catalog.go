// Package catalog maps business categories to Places search filters.
package catalog

import (
	"strings"
	"unicode"

	"github.com/localscope/localscope-cli/internal/textnorm"
)

// Category is one business category and the Places filters used to find
// its competitors.
type Category struct {
	Label   string `json:"label"`
	Icon    string `json:"icon"`
	Type    string `json:"type,omitempty"`
	Keyword string `json:"keyword,omitempty"`
}

// Display returns the label prefixed by its icon.
func (c Category) Display() string {
	if c.Icon == "" {
		return c.Label
	}
	return c.Icon + " " + c.Label
}

// Group is a heading in the catalog listing.
type Group string

// Catalog groups.
const (
	GroupFood     Group = "Food & drink"
	GroupRetail   Group = "Retail"
	GroupServices Group = "Health & services"
)

type entry struct {
	group Group
	Category
}

var entries = []entry{
	{GroupFood, Category{"Cafetería / Café", "☕", "cafe", "cafeteria cafe"}},
	{GroupFood, Category{"Restaurant / Resto", "🍽️", "restaurant", ""}},
	{GroupFood, Category{"Pizzería / Delivery", "🍕", "restaurant", "pizzeria delivery"}},
	{GroupFood, Category{"Panadería / Confitería", "🥐", "bakery", "panaderia confiteria"}},
	{GroupFood, Category{"Heladería", "🍦", "ice_cream_shop", "heladeria"}},
	{GroupFood, Category{"Bar / Cervecería", "🍺", "bar", "bar cerveceria"}},

	{GroupRetail, Category{"Ropa / Indumentaria", "👗", "clothing_store", "ropa indumentaria"}},
	{GroupRetail, Category{"Calzado / Zapatería", "👟", "shoe_store", "zapateria calzado"}},
	{GroupRetail, Category{"Perfumería / Cosmética", "💄", "beauty_supply", "perfumeria cosmetica"}},
	{GroupRetail, Category{"Almacén / Minimercado", "🛒", "convenience_store", "almacen kiosco"}},
	{GroupRetail, Category{"Verdulería / Frutería", "🌿", "grocery_or_supermarket", "verduleria fruteria"}},
	{GroupRetail, Category{"Carnicería", "🥩", "grocery_or_supermarket", "carniceria"}},
	{GroupRetail, Category{"Ferretería", "🔧", "hardware_store", "ferreteria"}},
	{GroupRetail, Category{"Electrónica / Celulares", "📱", "electronics_store", "celulares electronica"}},
	{GroupRetail, Category{"Librería / Papelería", "📚", "book_store", "libreria papeleria"}},
	{GroupRetail, Category{"Floristería", "🌸", "florist", "floreria"}},
	{GroupRetail, Category{"Veterinaria / Pet shop", "🐾", "veterinary_care", "veterinaria pet shop"}},

	{GroupServices, Category{"Farmacia", "💊", "pharmacy", ""}},
	{GroupServices, Category{"Peluquería / Barbería", "💈", "hair_care", "peluqueria barberia"}},
	{GroupServices, Category{"Estética / Nail bar", "💅", "beauty_salon", "estetica nail"}},
	{GroupServices, Category{"Gimnasio / Fitness", "🏋️", "gym", "gimnasio fitness"}},
	{GroupServices, Category{"Lavandería / Tintorería", "🧺", "laundry", "lavanderia tintoreria"}},
	{GroupServices, Category{"Imprenta / Fotocopiadora", "🖨️", "store", "imprenta fotocopiadora"}},
	{GroupServices, Category{"Centro médico / Clínica", "🏥", "doctor", "clinica medico"}},
}

var byLabel = func() map[string]int {
	m := make(map[string]int, len(entries))
	for i, e := range entries {
		m[textnorm.Fold(e.Label)] = i
	}
	return m
}()

// All returns the catalog in display order.
func All() []Category {
	out := make([]Category, len(entries))
	for i, e := range entries {
		out[i] = e.Category
	}
	return out
}

// Grouped returns the catalog keyed by group, each group in display order.
func Grouped() map[Group][]Category {
	out := make(map[Group][]Category, 3)
	for _, e := range entries {
		out[e.group] = append(out[e.group], e.Category)
	}
	return out
}

// Groups returns the group headings in display order.
func Groups() []Group {
	return []Group{GroupFood, GroupRetail, GroupServices}
}

// Lookup finds a catalog entry by label. Case, accents and a leading icon
// are ignored, so "☕ Cafetería / Café" and "cafeteria / cafe" both match.
func Lookup(label string) (Category, bool) {
	i, ok := byLabel[textnorm.Fold(stripIcon(label))]
	if !ok {
		return Category{}, false
	}
	return entries[i].Category, true
}

// Resolve returns the catalog entry for text when there is one. Otherwise
// text is a free-text category: no Places type, the text itself as the
// search keyword. ok is false only for blank text.
func Resolve(text string) (c Category, ok bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Category{}, false
	}
	if c, found := Lookup(text); found {
		return c, true
	}
	return Category{Label: text, Keyword: text}, true
}

// stripIcon drops a leading token that contains no letters or digits.
func stripIcon(s string) string {
	s = strings.TrimSpace(s)
	first, rest, found := strings.Cut(s, " ")
	if !found || strings.IndexFunc(first, isAlnum) >= 0 {
		return s
	}
	return rest
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
