package finder

import (
	"fmt"

	"github.com/vvka-141/exodus/pkg/exodus"
)

// PCDM use and file-format-type IRIs stamped into rdf_type cells.
const (
	usePreservation = "http://pcdm.org/use#PreservationFile"
	useIntermediate = "http://pcdm.org/use#IntermediateFile"
	useOriginal     = "http://pcdm.org/use#OriginalFile"
	useExtracted    = "http://pcdm.org/use#ExtractedText"
	useTranscript   = "http://pcdm.org/use#Transcript"
	useThumbnail    = "http://pcdm.org/use#ThumbnailImage"
	useService      = "http://pcdm.org/use#ServiceFile"
	formatMarkup    = "http://pcdm.org/file-format-types#Markup"
	formatText      = "http://pcdm.org/file-format-types#StructuredText"
	formatHTML      = "http://pcdm.org/file-format-types#HTML"
	formatDocument  = "http://pcdm.org/file-format-types#Document"
)

func join(types ...string) string {
	out := ""
	for i, t := range types {
		if i > 0 {
			out += exodus.Delimiter
		}
		out += t
	}
	return out
}

// fileTypes returns the rdf_type cell for one datastream of a work.
// preserveAndObj signals that the object carries both a preservation copy
// and a derivative, which shifts the role of the primary datastream.
func fileTypes(model, dsid string, preserveAndObj bool) (string, error) {
	if dsid == "OBJ" && !preserveAndObj {
		return join(usePreservation, useIntermediate), nil
	}
	switch model {
	case "Image":
		return imageFileTypes(dsid), nil
	case "Audio":
		return audioVideoFileTypes(dsid, "PROXY_MP3"), nil
	case "Video":
		return audioVideoFileTypes(dsid, "MP4"), nil
	case "Book":
		return bookFileTypes(dsid), nil
	case "Pdf", "Page":
		return pdfFileTypes(dsid), nil
	}
	return "", fmt.Errorf("%w: no file role table for model %q", exodus.ErrUnknownContentModel, model)
}

func imageFileTypes(dsid string) string {
	switch dsid {
	case "OBJ":
		return useIntermediate
	case "PRESERVE":
		return usePreservation
	case "MODS":
		return formatMarkup
	case "POLICY":
		return formatText
	case "OCR":
		return useExtracted
	case "HOCR":
		return formatHTML
	}
	return useOriginal
}

// audioVideoFileTypes covers both time-based media models; derivative is
// the model's derivative datastream id (PROXY_MP3 or MP4).
func audioVideoFileTypes(dsid, derivative string) string {
	switch dsid {
	case "OBJ":
		return usePreservation
	case derivative:
		return useIntermediate
	case "POLICY":
		return formatText
	case "MODS":
		return formatMarkup
	case "TRANSCRIPT", "TRANSCRIPT-ES":
		return useTranscript
	case "TN":
		return useThumbnail
	}
	return useOriginal
}

func bookFileTypes(dsid string) string {
	switch dsid {
	case "OBJ":
		return usePreservation
	case "MODS":
		return formatMarkup
	case "TRANSCRIPT", "OCR":
		return useTranscript
	case "PDF":
		return join(formatDocument, useService)
	case "ORIGINAL":
		return join(formatDocument, useService, useOriginal)
	case "ORIGINAL_EDITED":
		return join(formatDocument, useService)
	case "TEI":
		return formatMarkup
	}
	return useOriginal
}

func pdfFileTypes(dsid string) string {
	switch dsid {
	case "PDFA":
		return usePreservation
	case "OBJ":
		return join(useIntermediate, useOriginal)
	case "POLICY":
		return formatText
	case "MODS":
		return formatMarkup
	}
	return useOriginal
}
