// Copyright (c) 2026 Motoria. All rights reserved.
// Author: danu.arta.dev@gmail.com

package taxonomy

import (
	"context"
	"errors"

	"github.com/danuarta/motoria/internal/platform/dberr"
)

// Directory exposes the hierarchy as plain existence checks. The car
// aggregate validates its reference ids through this view without depending
// on taxonomy internals.
type Directory struct {
	repo Repository
}

// NewDirectory constructs a [Directory] over the given repository.
func NewDirectory(repo Repository) *Directory {
	return &Directory{repo: repo}
}

func (directory *Directory) HasBrand(context context.Context, id string) (bool, error) {
	_, err := directory.repo.FindBrandByID(context, id)
	return exists(err)
}

func (directory *Directory) HasAgent(context context.Context, id string) (bool, error) {
	_, err := directory.repo.FindAgentByID(context, id)
	return exists(err)
}

func (directory *Directory) HasCarName(context context.Context, id string) (bool, error) {
	_, err := directory.repo.FindCarNameByID(context, id)
	return exists(err)
}

func (directory *Directory) HasGrade(context context.Context, id string) (bool, error) {
	_, err := directory.repo.FindGradeByID(context, id)
	return exists(err)
}

func (directory *Directory) HasYear(context context.Context, id string) (bool, error) {
	_, err := directory.repo.FindYearByID(context, id)
	return exists(err)
}

func exists(err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if errors.Is(err, dberr.ErrNotFound) {
		return false, nil
	}
	return false, err
}
