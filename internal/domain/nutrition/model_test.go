package nutrition

import (
	"strings"
	"testing"
)

func TestCardsHaveUniqueSlugsAndPaths(t *testing.T) {
	for name, cards := range map[string][]Card{"home": HomeCards(), "catalog": CatalogCards()} {
		seen := map[string]bool{}
		for _, c := range cards {
			if c.Title == "" || !strings.HasPrefix(c.Path, "/") {
				t.Fatalf("%s: invalid card %+v", name, c)
			}
			if seen[c.Slug] {
				t.Fatalf("%s: duplicated slug %q", name, c.Slug)
			}
			seen[c.Slug] = true
		}
	}
}

func TestFindCatalog(t *testing.T) {
	if c, ok := FindCatalog(" Recipes "); !ok || c.Path != "/nutrition/recipes" {
		t.Fatalf("got %+v, %v", c, ok)
	}
	if _, ok := FindCatalog("unknown"); ok {
		t.Fatal("unknown slug must not match")
	}
}
