package config

import (
	"github.com/Veraticus/the-quote-must-flow/internal/model"
	"github.com/spf13/viper"
)

// LoadLetterhead reads letterhead.* from the global configuration, keeping
// the built-in value for anything left unset.
func LoadLetterhead() model.Letterhead {
	lh := model.DefaultLetterhead()

	if v := viper.GetString("letterhead.title"); v != "" {
		lh.Title = v
	}
	if v := viper.GetString("letterhead.author"); v != "" {
		lh.Author = v
	}
	if v := viper.GetString("letterhead.contact"); v != "" {
		lh.Contact = v
	}
	if v := viper.GetString("letterhead.email"); v != "" {
		lh.Email = v
	}
	if v := viper.GetString("letterhead.signatory"); v != "" {
		lh.Signatory = v
	}

	return lh
}

// LoadPDFFonts reads pdf.font and pdf.font_bold, the TrueType files used for
// non-Latin text. Both are empty when unset.
func LoadPDFFonts() (regular, bold string) {
	return ExpandPath(viper.GetString("pdf.font")), ExpandPath(viper.GetString("pdf.font_bold"))
}
