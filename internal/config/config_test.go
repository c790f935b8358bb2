package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/the-quote-must-flow/internal/common"
	"github.com/Veraticus/the-quote-must-flow/internal/model"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("QUOTE_TEST_DIR", "/srv/quotes")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"absolute", "/tmp/q", "/tmp/q"},
		{"tilde", "~", home},
		{"tilde prefix", "~/Quotes", filepath.Join(home, "Quotes")},
		{"env var", "$QUOTE_TEST_DIR/2024", "/srv/quotes/2024"},
		{"tilde mid-path untouched", "/a/~/b", "/a/~/b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.in))
		})
	}
}

func TestLoadSettings_MissingFileGivesDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()

	s, err := LoadSettings(fs, "/cfg/settings.json")
	require.NoError(t, err)
	assert.Equal(t, model.DefaultSettings(), s)
}

func TestSettingsRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()
	want := model.Settings{SaveMode: model.SaveModeQuickPrint, SaveFolder: "/home/me/Quotes"}

	require.NoError(t, SaveSettings(fs, "/cfg/nested/settings.json", want))

	raw, err := afero.ReadFile(fs, "/cfg/nested/settings.json")
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"save_mode"`)
	assert.Contains(t, string(raw), `"quick_print"`)

	got, err := LoadSettings(fs, "/cfg/nested/settings.json")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadSettings_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown mode", `{"save_mode": "fax it", "save_folder": ""}`},
		{"malformed json", `{"save_mode": `},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, "/settings.json", []byte(tt.content), 0o644))

			_, err := LoadSettings(fs, "/settings.json")
			assert.ErrorIs(t, err, common.ErrInvalidConfig)
		})
	}
}

func TestLoadSettings_AcceptsLabels(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/settings.json",
		[]byte(`{"save_mode": "Auto-Save & Open", "save_folder": "/q"}`), 0o644))

	s, err := LoadSettings(fs, "/settings.json")
	require.NoError(t, err)
	assert.Equal(t, model.SaveModeAutoSaveOpen, s.SaveMode)
	assert.Equal(t, "/q", s.SaveFolder)
}

func TestSaveSettings_RejectsUnknownMode(t *testing.T) {
	fs := afero.NewMemMapFs()
	err := SaveSettings(fs, "/settings.json", model.Settings{SaveMode: "later"})
	assert.ErrorIs(t, err, common.ErrInvalidConfig)

	exists, _ := afero.Exists(fs, "/settings.json")
	assert.False(t, exists)
}

func TestUpdateSettings(t *testing.T) {
	s, err := UpdateSettings(model.DefaultSettings(), "save_mode", "auto save only")
	require.NoError(t, err)
	assert.Equal(t, model.SaveModeAutoSaveOnly, s.SaveMode)

	s, err = UpdateSettings(s, "save_folder", "~/Quotes")
	require.NoError(t, err)
	assert.Equal(t, "~/Quotes", s.SaveFolder)

	_, err = UpdateSettings(s, "save_mode", "sometimes")
	assert.ErrorIs(t, err, common.ErrInvalidConfig)

	_, err = UpdateSettings(s, "colour", "blue")
	var fieldErr *common.FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "colour", fieldErr.Field)
}

func TestLoadLetterhead(t *testing.T) {
	t.Cleanup(viper.Reset)

	viper.Reset()
	assert.Equal(t, model.DefaultLetterhead(), LoadLetterhead())

	viper.Set("letterhead.title", "ACME STUDIO")
	viper.Set("letterhead.contact", "555-0100")
	lh := LoadLetterhead()
	assert.Equal(t, "ACME STUDIO", lh.Title)
	assert.Equal(t, "555-0100", lh.Contact)
	assert.Equal(t, "Authorised Signatory", lh.Signatory)
}

func TestLoadPDFFonts(t *testing.T) {
	t.Cleanup(viper.Reset)

	viper.Reset()
	regular, bold := LoadPDFFonts()
	assert.Empty(t, regular)
	assert.Empty(t, bold)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	viper.Set("pdf.font", "~/fonts/NotoSans-Regular.ttf")
	regular, bold = LoadPDFFonts()
	assert.Equal(t, filepath.Join(home, "fonts", "NotoSans-Regular.ttf"), regular)
	assert.Empty(t, bold)
}
