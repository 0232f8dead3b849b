package enums

import "fmt"

// BookFormat identifies the purchasable edition of a title.
type BookFormat string

const (
	BookFormatEbook     BookFormat = "ebook"
	BookFormatPaperback BookFormat = "paperback"
	BookFormatHardcover BookFormat = "hardcover"
)

var validBookFormats = []BookFormat{
	BookFormatEbook,
	BookFormatPaperback,
	BookFormatHardcover,
}

// IsValid reports whether the value matches the canonical book format enum.
func (b BookFormat) IsValid() bool {
	for _, candidate := range validBookFormats {
		if candidate == b {
			return true
		}
	}
	return false
}

// IsPhysical reports whether the format needs shipping.
func (b BookFormat) IsPhysical() bool {
	return b != BookFormatEbook
}

// ParseBookFormat converts the raw string to BookFormat.
func ParseBookFormat(value string) (BookFormat, error) {
	for _, candidate := range validBookFormats {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid book format %q", value)
}
