package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Config is the resolved cleanup configuration. The engine treats it as a
// read-only value.
type Config struct {
	TempFileSuffixes         []string `mapstructure:"temp_file_suffixes" yaml:"temp_file_suffixes"`
	BadPermissionModes       []string `mapstructure:"bad_permission_modes" yaml:"bad_permission_modes"`
	BadPermissionReplacement string   `mapstructure:"bad_permission_replacement" yaml:"bad_permission_replacement"`
	BadCharacters            []string `mapstructure:"bad_characters" yaml:"bad_characters"`
	BadCharacterReplacement  string   `mapstructure:"bad_character_replacement" yaml:"bad_character_replacement"`
}

// Default returns the built-in configuration written on first run.
func Default() Config {
	return Config{
		TempFileSuffixes:         []string{".TEMP", "~", ".tmp", ".temp"},
		BadPermissionModes:       []string{"777"},
		BadPermissionReplacement: "644",
		BadCharacters:            []string{":", "\"", ",", ";", "*", "?", "$", "#", "'", "|", "\\"},
		BadCharacterReplacement:  "_",
	}
}

// Validate checks that every field can be applied by the executor.
func (c Config) Validate() error {
	var errs []error

	for _, suffix := range c.TempFileSuffixes {
		if suffix == "" {
			errs = append(errs, errors.New("temp_file_suffixes: empty suffix would match every file"))
		}
	}

	for _, mode := range c.BadPermissionModes {
		if _, err := parsePerm(mode); err != nil {
			errs = append(errs, fmt.Errorf("bad_permission_modes: %w", err))
		}
	}

	if _, err := parsePerm(c.BadPermissionReplacement); err != nil {
		errs = append(errs, fmt.Errorf("bad_permission_replacement: %w", err))
	}

	for _, ch := range c.BadCharacters {
		if utf8.RuneCountInString(ch) != 1 {
			errs = append(errs, fmt.Errorf("bad_characters: %q is not a single character", ch))
		}
	}

	// a replacement containing a bad character would never converge
	if c.HasBadCharacter(c.BadCharacterReplacement) {
		errs = append(errs, fmt.Errorf("bad_character_replacement: %q contains a bad character", c.BadCharacterReplacement))
	}

	return errors.Join(errs...)
}

// PermissionReplacement returns bad_permission_replacement as file mode bits.
func (c Config) PermissionReplacement() (os.FileMode, error) {
	return parsePerm(c.BadPermissionReplacement)
}

// IsTempName reports whether name ends with one of the temp suffixes.
func (c Config) IsTempName(name string) bool {
	for _, suffix := range c.TempFileSuffixes {
		if suffix != "" && strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// IsBadPermission reports whether the octal permission string is flagged.
func (c Config) IsBadPermission(perm string) bool {
	for _, mode := range c.BadPermissionModes {
		if mode == perm {
			return true
		}
	}
	return false
}

// HasBadCharacter reports whether name contains any configured bad character.
func (c Config) HasBadCharacter(name string) bool {
	for _, ch := range c.BadCharacters {
		if ch != "" && strings.Contains(name, ch) {
			return true
		}
	}
	return false
}

// FixName replaces every bad character in name with the configured
// replacement and keeps all other characters in order.
func (c Config) FixName(name string) string {
	bad := make(map[rune]struct{}, len(c.BadCharacters))
	for _, ch := range c.BadCharacters {
		for _, r := range ch {
			bad[r] = struct{}{}
		}
	}

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if _, ok := bad[r]; ok {
			b.WriteString(c.BadCharacterReplacement)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func parsePerm(s string) (os.FileMode, error) {
	v, err := strconv.ParseUint(s, 8, 32)
	if err != nil {
		return 0, fmt.Errorf("%q is not an octal permission", s)
	}
	if v > 0o777 {
		return 0, fmt.Errorf("%q is out of range", s)
	}
	return os.FileMode(v), nil
}
