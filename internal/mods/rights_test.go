package mods

import (
	"testing"
)

func TestRightsOrLicense_ExplicitRightsStatement(t *testing.T) {
	doc := mustDoc(t, `<mods xmlns="http://www.loc.gov/mods/v3" xmlns:xlink="http://www.w3.org/1999/xlink">
		<accessCondition type="use and reproduction" xlink:href="http://rightsstatements.org/vocab/NoC-US/1.0/">No Copyright</accessCondition>
	</mods>`)

	fields, err := newTestExtractor().RightsOrLicense(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertValues(t, fields, "rights_statement", []string{"http://rightsstatements.org/vocab/NoC-US/1.0/"})
	if _, ok := fields["license"]; ok {
		t.Error("no license field expected")
	}
}

func TestRightsOrLicense_CC0ImpliesNoKnownCopyright(t *testing.T) {
	doc := mustDoc(t, `<mods xmlns="http://www.loc.gov/mods/v3" xmlns:xlink="http://www.w3.org/1999/xlink">
		<accessCondition xlink:href="https://creativecommons.org/publicdomain/zero/1.0/">CC0</accessCondition>
	</mods>`)

	fields, err := newTestExtractor().RightsOrLicense(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertValues(t, fields, "license", []string{"http://creativecommons.org/publicdomain/zero/1.0/"})
	assertValues(t, fields, "rights_statement", []string{"http://rightsstatements.org/vocab/NKC/1.0/"})
}

func TestRightsOrLicense_OtherLicenseImpliesInCopyright(t *testing.T) {
	doc := mustDoc(t, `<mods xmlns="http://www.loc.gov/mods/v3" xmlns:xlink="http://www.w3.org/1999/xlink">
		<accessCondition xlink:href="http://creativecommons.org/licenses/by-nc-nd/3.0/">CC BY-NC-ND</accessCondition>
	</mods>`)

	fields, err := newTestExtractor().RightsOrLicense(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertValues(t, fields, "rights_statement", []string{"http://rightsstatements.org/vocab/InC/1.0/"})
}

func TestRightsOrLicense_NothingImpliesNotEvaluated(t *testing.T) {
	doc := mustDoc(t, `<mods xmlns="http://www.loc.gov/mods/v3" xmlns:xlink="http://www.w3.org/1999/xlink">
		<accessCondition xlink:href="http://example.org/some-policy">Local policy</accessCondition>
	</mods>`)

	fields, err := newTestExtractor().RightsOrLicense(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertValues(t, fields, "rights_statement", []string{"http://rightsstatements.org/vocab/CNE/1.0/"})
}

func TestRightsOrLicense_RestrictionOnAccessIgnored(t *testing.T) {
	doc := mustDoc(t, `<mods xmlns="http://www.loc.gov/mods/v3" xmlns:xlink="http://www.w3.org/1999/xlink">
		<accessCondition type="restriction on access" xlink:href="http://rightsstatements.org/vocab/InC/1.0/">Restricted</accessCondition>
	</mods>`)

	fields, err := newTestExtractor().RightsOrLicense(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertValues(t, fields, "rights_statement", []string{"http://rightsstatements.org/vocab/CNE/1.0/"})
}
