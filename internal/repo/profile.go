package repo

import (
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"exusiai.dev/gazeseq/internal/app/appconfig"
	"exusiai.dev/gazeseq/internal/model"
)

// Profile holds the YAML profile named by the configuration. Without a configured
// path the profile is empty.
type Profile struct {
	profile *model.Profile
	path    string
}

func NewProfile(conf *appconfig.Config) (*Profile, error) {
	p := &Profile{profile: &model.Profile{}, path: conf.ProfilePath}
	if conf.ProfilePath == "" {
		return p, nil
	}

	b, err := os.ReadFile(conf.ProfilePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read profile")
	}
	profile, err := ParseProfile(b)
	if err != nil {
		return nil, err
	}
	p.profile = profile

	log.Info().
		Str("evt.name", "repo.profile.loaded").
		Str("path", conf.ProfilePath).
		Int("rejectRules", len(profile.RejectRules)).
		Int("datasets", len(profile.Datasets)).
		Msg("profile loaded")

	return p, nil
}

// NewProfileFrom wraps an already parsed profile.
func NewProfileFrom(profile *model.Profile) *Profile {
	return &Profile{profile: profile}
}

func ParseProfile(b []byte) (*model.Profile, error) {
	var profile model.Profile
	if err := yaml.Unmarshal(b, &profile); err != nil {
		return nil, errors.Wrap(err, "failed to parse profile")
	}
	return &profile, nil
}

func (p *Profile) Path() string {
	return p.path
}
