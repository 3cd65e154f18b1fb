package github

import "strings"

// License is a license the hosting service can add on creation.
// The zero value means no license.
type License string

const (
	LicenseNone   License = ""
	LicenseMIT    License = "MIT"
	LicenseApache License = "Apache-2.0"
	LicenseGPL    License = "GPL-3.0"
)

// LicenseChoice is one entry of the license menu
type LicenseChoice struct {
	Key         string
	License     License
	Description string
}

// LicenseChoices is the fixed license menu, in display order
var LicenseChoices = []LicenseChoice{
	{"1", LicenseMIT, "MIT (recommended - most permissive)"},
	{"2", LicenseApache, "Apache 2.0 (permissive with patent grant)"},
	{"3", LicenseGPL, "GPL v3 (copyleft - derivatives must be open source)"},
	{"4", LicenseNone, "None (no license)"},
}

// DefaultLicenseKey is selected when the answer is empty
const DefaultLicenseKey = "1"

// ParseLicense resolves a menu key or license name. Empty input selects MIT,
// "4" or "none" selects no license, and anything unrecognized falls back to MIT.
func ParseLicense(input string) License {
	in := strings.ToLower(strings.TrimSpace(input))
	if in == "" {
		in = DefaultLicenseKey
	}
	for _, c := range LicenseChoices {
		if in == c.Key || (c.License != LicenseNone && in == strings.ToLower(string(c.License))) {
			return c.License
		}
	}
	if in == "none" {
		return LicenseNone
	}
	return LicenseMIT
}

// ID returns the gh license identifier, or "" for no license
func (l License) ID() string {
	return strings.ToLower(string(l))
}

// Selected reports whether a license was chosen
func (l License) Selected() bool {
	return l != LicenseNone
}

func (l License) String() string {
	if l == LicenseNone {
		return "None"
	}
	return string(l)
}
