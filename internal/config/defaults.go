package config

const (
	defaultPrefix    = "foto"
	defaultExtension = ".webp"
	defaultQuality   = 85
	defaultMethod    = 6
	defaultLogFormat = "console"
	defaultLogLevel  = "info"
)

// DefaultPrefixes are the filename prefixes tried, in order, when resolving a
// sequence number back to an original. The empty prefix matches bare "0001.jpg".
var DefaultPrefixes = []string{"foto7_", "DSC_", "IMG_", "foto_", ""}

// DefaultFolders returns the category folder names used by the selector export.
func DefaultFolders() Folders {
	return Folders{
		Amplify:      "ampliacion",
		Print:        "impresion",
		Social:       "redes_sociales",
		Invitation:   "invitacion",
		Discard:      "descartada",
		Unclassified: "sin_clasificar",
	}
}

// Default returns a Config populated with the built-in defaults. Paths are
// left empty: they must come from the operator's config file.
func Default() Config {
	return Config{
		Convert: Convert{
			Prefix:    defaultPrefix,
			Extension: defaultExtension,
			Quality:   defaultQuality,
			Method:    defaultMethod,
		},
		Classify: Classify{
			Prefixes: append([]string(nil), DefaultPrefixes...),
			Folders:  DefaultFolders(),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
