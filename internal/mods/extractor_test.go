package mods

import (
	"errors"
	"testing"

	"github.com/vvka-141/exodus/pkg/exodus"
)

func TestRun_UnknownKindFails(t *testing.T) {
	doc := mustDoc(t, `<mods xmlns="http://www.loc.gov/mods/v3"/>`)

	_, err := newTestExtractor().Run("NoSuchProperty", doc, "whatever")
	if err == nil {
		t.Fatal("expected error for unknown extractor kind")
	}
	if !errors.Is(err, exodus.ErrUnknownExtractor) {
		t.Errorf("expected ErrUnknownExtractor, got %v", err)
	}
}

func TestRun_DispatchesByKind(t *testing.T) {
	doc := mustDoc(t, `<mods xmlns="http://www.loc.gov/mods/v3">
		<titleInfo><title>Dispatch check</title></titleInfo>
	</mods>`)

	fields, err := newTestExtractor().Run(KindTitle, doc, "title")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertValues(t, fields, "title", []string{"Dispatch check"})
}

func TestStandard_ConcatenatesXPathsInOrder(t *testing.T) {
	doc := mustDoc(t, `<mods xmlns="http://www.loc.gov/mods/v3">
		<abstract>First summary</abstract>
		<note>A note</note>
	</mods>`)

	values, err := newTestExtractor().Standard(doc, []string{
		"mods:abstract",
		"mods:note",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"First summary", "A note"}
	if len(values) != len(want) {
		t.Fatalf("expected %v, got %v", want, values)
	}
	for i := range want {
		if values[i] != want[i] {
			t.Errorf("value %d: expected %q, got %q", i, want[i], values[i])
		}
	}
}

func TestMachineDates_TwoValuesCollapseToRange(t *testing.T) {
	doc := mustDoc(t, `<mods xmlns="http://www.loc.gov/mods/v3">
		<originInfo>
			<dateCreated encoding="edtf">1945-09-02</dateCreated>
			<dateCreated encoding="edtf">1945-05-08</dateCreated>
		</originInfo>
	</mods>`)

	fields, err := newTestExtractor().MachineDates(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertValues(t, fields, "date_created_d", []string{"1945-05-08/1945-09-02"})
}

func TestMachineDates_SingleValuePassesThrough(t *testing.T) {
	doc := mustDoc(t, `<mods xmlns="http://www.loc.gov/mods/v3">
		<originInfo>
			<dateIssued encoding="edtf">1923</dateIssued>
			<dateIssued>1923-ish</dateIssued>
		</originInfo>
	</mods>`)

	fields, err := newTestExtractor().MachineDates(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertValues(t, fields, "date_issued_d", []string{"1923"})
	assertValues(t, fields, "date_created_d", nil)
}

func TestRepositories_MisspelledUniversityNormalized(t *testing.T) {
	doc := mustDoc(t, `<mods xmlns="http://www.loc.gov/mods/v3">
		<location>
			<physicalLocation>University of Tennessee Special Collections</physicalLocation>
		</location>
	</mods>`)

	fields, err := newTestExtractor().PhysicalLocations(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertValues(t, fields, "repository", []string{"University of Tennessee, Knoxville. Special Collections"})
}

func TestRepositories_LabeledRepositoryKeptVerbatim(t *testing.T) {
	doc := mustDoc(t, `<mods xmlns="http://www.loc.gov/mods/v3">
		<location>
			<physicalLocation displayLabel="Repository">Hodges Library</physicalLocation>
		</location>
	</mods>`)

	fields, err := newTestExtractor().PhysicalLocations(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertValues(t, fields, "repository", []string{"Hodges Library"})
}

func TestArchivalCollections_RelatedItemRendering(t *testing.T) {
	doc := mustDoc(t, `<mods xmlns="http://www.loc.gov/mods/v3">
		<relatedItem displayLabel="Collection">
			<identifier>MS-1234</identifier>
			<titleInfo><title>Smith Family Papers</title></titleInfo>
		</relatedItem>
		<relatedItem displayLabel="Collection">
			<titleInfo><title>Untitled Collection</title></titleInfo>
		</relatedItem>
	</mods>`)

	fields, err := newTestExtractor().PhysicalLocations(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertValues(t, fields, "archival_collection", []string{
		"Smith Family Papers, MS-1234",
		"Untitled Collection",
	})
}

func TestSubjects_FixedExpressionOrder(t *testing.T) {
	doc := mustDoc(t, `<mods xmlns="http://www.loc.gov/mods/v3">
		<subject valueURI="http://id.loc.gov/authorities/subjects/sh001">
			<topic>Streets</topic>
		</subject>
		<subject>
			<topic valueURI="http://id.loc.gov/authorities/subjects/sh002">Bridges</topic>
		</subject>
		<genre authority="aat" valueURI="http://vocab.getty.edu/aat/300015637">photographs</genre>
	</mods>`)

	fields, err := newTestExtractor().Subjects(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertValues(t, fields, "subject", []string{
		"http://id.loc.gov/authorities/subjects/sh001",
		"http://id.loc.gov/authorities/subjects/sh002",
		"http://vocab.getty.edu/aat/300015637",
	})
}

func TestKeywords_OnlyURIFreeChains(t *testing.T) {
	doc := mustDoc(t, `<mods xmlns="http://www.loc.gov/mods/v3">
		<subject><topic>Local lore</topic></subject>
		<subject valueURI="http://id.loc.gov/authorities/subjects/sh001">
			<topic>Controlled</topic>
		</subject>
	</mods>`)

	fields, err := newTestExtractor().Keywords(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertValues(t, fields, "keyword", []string{"Local lore"})
}

func TestGeoNames_StripsAboutRDF(t *testing.T) {
	doc := mustDoc(t, `<mods xmlns="http://www.loc.gov/mods/v3">
		<subject valueURI="http://id.loc.gov/authorities/names/n79007196">
			<geographic>Knoxville (Tenn.)</geographic>
		</subject>
		<subject>
			<geographic valueURI="http://sws.geonames.org/4634946/about.rdf">Knoxville</geographic>
		</subject>
	</mods>`)

	fields, err := newTestExtractor().GeoNames(doc, "spatial")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertValues(t, fields, "spatial", []string{
		"http://id.loc.gov/authorities/names/n79007196",
		"http://sws.geonames.org/4634946/",
	})
}

func TestLanguages_UnknownTermsDropped(t *testing.T) {
	doc := mustDoc(t, `<mods xmlns="http://www.loc.gov/mods/v3">
		<language><languageTerm>English</languageTerm></language>
		<language><languageTerm>Klingon</languageTerm></language>
	</mods>`)

	fields, err := newTestExtractor().Languages(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertValues(t, fields, "language", []string{"http://id.loc.gov/vocabulary/iso639-2/eng"})
}

func TestExtents_UnitRenderingAndOrder(t *testing.T) {
	doc := mustDoc(t, `<mods xmlns="http://www.loc.gov/mods/v3">
		<physicalDescription>
			<extent>1 postcard</extent>
			<extent unit="inches">3 x 5</extent>
		</physicalDescription>
	</mods>`)

	fields, err := newTestExtractor().Extents(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertValues(t, fields, "extent", []string{"3 x 5 inches", "1 postcard"})
}

func TestDataProviders_FixedProviderAndIntermediates(t *testing.T) {
	doc := mustDoc(t, `<mods xmlns="http://www.loc.gov/mods/v3">
		<recordInfo>
			<recordContentSource>University of Tennessee, Knoxville. Libraries</recordContentSource>
			<recordContentSource>Knox County Public Library</recordContentSource>
		</recordInfo>
	</mods>`)

	fields, err := newTestExtractor().DataProviders(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertValues(t, fields, "provider", []string{"University of Tennessee, Knoxville. Libraries"})
	assertValues(t, fields, "intermediate_provider", []string{"Knox County Public Library"})
}
