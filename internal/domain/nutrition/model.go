// Package nutrition es el lanzador del panel: tarjetas estáticas que llevan
// a cada sección. No tiene lógica ni llama al backend.
package nutrition

import "strings"

// Card es una tarjeta del lanzador.
type Card struct {
	Slug        string
	Title       string
	Description string
	Path        string
}

// HomeCards son las secciones del dashboard de inicio.
func HomeCards() []Card {
	return []Card{
		{Slug: "users", Title: "Usuarios", Description: "Administradores, médicos y pacientes registrados.", Path: "/users"},
		{Slug: "children", Title: "Niños", Description: "Niños en seguimiento con sus medidas y su madre.", Path: "/children"},
		{Slug: "nutrition", Title: "Nutrición", Description: "Catálogos de alimentos, recetas y planes.", Path: "/nutrition"},
	}
}

// CatalogCards son los catálogos del módulo de nutrición.
func CatalogCards() []Card {
	return []Card{
		{Slug: "foods", Title: "Alimentos", Description: "Catálogo de alimentos y su composición.", Path: "/nutrition/foods"},
		{Slug: "recipes", Title: "Recetas", Description: "Recetas recomendadas por grupo de edad.", Path: "/nutrition/recipes"},
		{Slug: "plans", Title: "Planes de alimentación", Description: "Planes asignados por el equipo médico.", Path: "/nutrition/plans"},
		{Slug: "growth", Title: "Tablas de crecimiento", Description: "Referencias de peso y talla por edad.", Path: "/nutrition/growth"},
	}
}

// FindCatalog busca un catálogo por slug.
func FindCatalog(slug string) (Card, bool) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	for _, c := range CatalogCards() {
		if c.Slug == slug {
			return c, true
		}
	}
	return Card{}, false
}
