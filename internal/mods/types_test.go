package mods

import (
	"testing"
)

func TestTypes_BareCartographicGenre(t *testing.T) {
	doc := mustDoc(t, `<mods xmlns="http://www.loc.gov/mods/v3">
		<genre>cartographic</genre>
	</mods>`)

	fields, err := newTestExtractor().Types(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertValues(t, fields, "resource_type", []string{"http://id.loc.gov/vocabulary/resourceTypes/car"})
	assertValues(t, fields, "form_local", nil)
}

func TestTypes_DctAuthorityGenre(t *testing.T) {
	doc := mustDoc(t, `<mods xmlns="http://www.loc.gov/mods/v3">
		<genre authority="dct">still image</genre>
	</mods>`)

	fields, err := newTestExtractor().Types(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertValues(t, fields, "resource_type", []string{"http://id.loc.gov/vocabulary/resourceTypes/img"})
}

func TestTypes_AttributeBearingGenreNotMapped(t *testing.T) {
	// cartographic only maps when the genre element carries no attributes
	doc := mustDoc(t, `<mods xmlns="http://www.loc.gov/mods/v3">
		<genre authority="lcsh">cartographic</genre>
	</mods>`)

	fields, err := newTestExtractor().Types(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertValues(t, fields, "resource_type", nil)
}

func TestTypes_TypeOfResourceAndCollectionFlag(t *testing.T) {
	doc := mustDoc(t, `<mods xmlns="http://www.loc.gov/mods/v3">
		<typeOfResource>sound recording</typeOfResource>
		<typeOfResource collection="yes">mixed material</typeOfResource>
	</mods>`)

	fields, err := newTestExtractor().Types(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertValues(t, fields, "resource_type", []string{
		"http://id.loc.gov/vocabulary/resourceTypes/aud",
		"http://id.loc.gov/vocabulary/resourceTypes/col",
	})
}

func TestTypes_FormURIsAndLocalForms(t *testing.T) {
	doc := mustDoc(t, `<mods xmlns="http://www.loc.gov/mods/v3">
		<genre authority="lcgft" valueURI="http://id.loc.gov/authorities/genreForms/gf2017027249">Photographs</genre>
		<physicalDescription>
			<form valueURI="http://vocab.getty.edu/aat/300127121">gelatin silver prints</form>
			<form>postcard</form>
			<form type="material">paper</form>
		</physicalDescription>
	</mods>`)

	fields, err := newTestExtractor().Types(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertValues(t, fields, "form", []string{
		"http://id.loc.gov/authorities/genreForms/gf2017027249",
		"http://vocab.getty.edu/aat/300127121",
	})
	assertValues(t, fields, "form_local", []string{"postcard"})
}

func TestLocalTypes_ReturnsMatchedStrings(t *testing.T) {
	doc := mustDoc(t, `<mods xmlns="http://www.loc.gov/mods/v3">
		<genre>notated music</genre>
		<typeOfResource>text</typeOfResource>
	</mods>`)

	fields, err := newTestExtractor().LocalTypes(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertValues(t, fields, "resource_type_local", []string{"notated music", "text"})
}

func TestLocalTypes_LooseFormsKeepURIValued(t *testing.T) {
	doc := mustDoc(t, `<mods xmlns="http://www.loc.gov/mods/v3">
		<physicalDescription>
			<form valueURI="http://vocab.getty.edu/aat/300127121">gelatin silver prints</form>
			<form type="material">paper</form>
		</physicalDescription>
		<genre authority="lcsh">Portraits</genre>
	</mods>`)

	fields, err := newTestExtractor().LocalTypes(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertValues(t, fields, "form_local", []string{"gelatin silver prints", "Portraits"})
}
