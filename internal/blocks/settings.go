package blocks

import "maps"

// Keys shared by every block type.
const (
	SettingPadding    = "padding"
	SettingMargin     = "margin"
	SettingAlignment  = "alignment"
	SettingBackground = "background"
	SettingAnimation  = "animation"
)

func commonSettings() Settings {
	return Settings{
		SettingPadding:    "md",
		SettingMargin:     "none",
		SettingAlignment:  "center",
		SettingBackground: "none",
		SettingAnimation:  "fade-up",
	}
}

func withCommon(extra Settings) Settings {
	out := commonSettings()
	maps.Copy(out, extra)
	return out
}

// MergeSettings overlays overrides on defaults one key at a time. Nested
// values are replaced, not merged.
func MergeSettings(defaults, overrides Settings) Settings {
	out := make(Settings, len(defaults)+len(overrides))
	for k, v := range defaults {
		out[k] = cloneValue(v)
	}
	for k, v := range overrides {
		out[k] = cloneValue(v)
	}
	return out
}
