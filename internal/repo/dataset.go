package repo

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"exusiai.dev/gazeseq/internal/model"
	pkgerrors "exusiai.dev/gazeseq/internal/pkg/errors"
)

var ErrDatasetNotFound = errors.New("dataset not found")

type Dataset struct {
	profile  *Profile
	validate *validator.Validate
}

func NewDataset(profile *Profile) *Dataset {
	return &Dataset{profile: profile, validate: validator.New()}
}

// GetDatasets returns every dataset of the profile after validating each of them.
func (r *Dataset) GetDatasets(ctx context.Context) ([]*model.Dataset, error) {
	for _, d := range r.profile.profile.Datasets {
		if err := r.validate.Struct(d); err != nil {
			return nil, pkgerrors.ErrInvalidConfig.WithMessage("invalid dataset %q in profile: %s", d.Name, err.Error())
		}
	}
	return r.profile.profile.Datasets, nil
}

func (r *Dataset) GetDatasetByName(ctx context.Context, name string) (*model.Dataset, error) {
	datasets, err := r.GetDatasets(ctx)
	if err != nil {
		return nil, err
	}
	d, ok := lo.Find(datasets, func(d *model.Dataset) bool {
		return d.Name == name
	})
	if !ok {
		return nil, errors.Wrap(ErrDatasetNotFound, fmt.Sprintf("dataset %q", name))
	}
	return d, nil
}
