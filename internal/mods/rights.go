package mods

import (
	"strings"

	"github.com/vvka-141/exodus/internal/xmldoc"
)

const (
	rightsNoKnownCopyright     = "http://rightsstatements.org/vocab/NKC/1.0/"
	rightsInCopyright          = "http://rightsstatements.org/vocab/InC/1.0/"
	rightsCopyrightNotEvaluted = "http://rightsstatements.org/vocab/CNE/1.0/"

	licensePublicDomain = "http://creativecommons.org/publicdomain/zero/1.0/"
)

// RightsOrLicense classifies accessCondition hrefs into rights_statement and
// license fields with a three-tier fallback: explicit rights statements win;
// a bare license implies No Known Copyright for CC0 and In Copyright for
// everything else; no URI at all means Copyright Not Evaluated.
func (e *Extractor) RightsOrLicense(doc *xmldoc.Document) (map[string][]string, error) {
	hrefs, err := doc.Strings(`mods:accessCondition[not(@type="restriction on access")]/@xlink:href`)
	if err != nil {
		return nil, err
	}

	var rights, licenses []string
	for _, href := range hrefs {
		switch {
		case strings.Contains(href, "rightsstatements.org"):
			rights = append(rights, href)
		case strings.Contains(href, "creativecommons.org"):
			licenses = append(licenses, strings.Replace(href, "https://", "http://", 1))
		}
	}

	fields := map[string][]string{}
	if len(rights) > 0 {
		fields["rights_statement"] = rights
	}
	if len(licenses) > 0 {
		fields["license"] = licenses
	}
	if len(rights) == 0 {
		switch {
		case len(licenses) == 0:
			fields["rights_statement"] = []string{rightsCopyrightNotEvaluted}
		case licenses[0] == licensePublicDomain:
			fields["rights_statement"] = []string{rightsNoKnownCopyright}
		default:
			fields["rights_statement"] = []string{rightsInCopyright}
		}
	}
	return fields, nil
}
