package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/Veraticus/the-quote-must-flow/internal/common"
	"github.com/Veraticus/the-quote-must-flow/internal/model"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

const (
	keySaveMode   = "save_mode"
	keySaveFolder = "save_folder"
)

func settingsViper(fs afero.Fs, path string) *viper.Viper {
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigFile(path)
	v.SetConfigType("json")
	v.SetDefault(keySaveMode, string(model.SaveModeAskEveryTime))
	v.SetDefault(keySaveFolder, "")
	return v
}

// LoadSettings reads the settings file at path. A missing file yields the
// defaults; a file naming an unknown save mode is rejected.
func LoadSettings(fs afero.Fs, path string) (model.Settings, error) {
	path = ExpandPath(path)
	v := settingsViper(fs, path)

	exists, err := afero.Exists(fs, path)
	if err != nil {
		return model.Settings{}, fmt.Errorf("failed to stat settings file: %w", err)
	}
	if exists {
		if err := v.ReadInConfig(); err != nil {
			return model.Settings{}, fmt.Errorf("%w: %s: %w", common.ErrInvalidConfig, path, err)
		}
	}

	mode, ok := model.ParseSaveMode(v.GetString(keySaveMode))
	if !ok {
		return model.Settings{}, fmt.Errorf("%w: unknown save mode %q", common.ErrInvalidConfig, v.GetString(keySaveMode))
	}

	return model.Settings{
		SaveMode:   mode,
		SaveFolder: v.GetString(keySaveFolder),
	}, nil
}

// SaveSettings writes s to path as JSON, creating parent directories.
func SaveSettings(fs afero.Fs, path string, s model.Settings) error {
	if _, ok := model.ParseSaveMode(string(s.SaveMode)); !ok {
		return fmt.Errorf("%w: unknown save mode %q", common.ErrInvalidConfig, s.SaveMode)
	}

	path = ExpandPath(path)
	if filepath.Ext(path) == "" {
		return errors.New("settings path needs a file extension")
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	v := settingsViper(fs, path)
	v.Set(keySaveMode, string(s.SaveMode))
	v.Set(keySaveFolder, s.SaveFolder)
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// UpdateSettings applies a single key=value change and returns the result.
// Keys are save_mode and save_folder.
func UpdateSettings(current model.Settings, key, value string) (model.Settings, error) {
	switch key {
	case keySaveMode:
		mode, ok := model.ParseSaveMode(value)
		if !ok {
			return current, common.NewFieldError(key, value, common.ErrInvalidConfig)
		}
		current.SaveMode = mode
	case keySaveFolder:
		current.SaveFolder = value
	default:
		return current, common.NewFieldError(key, value, common.ErrInvalidConfig)
	}
	return current, nil
}
