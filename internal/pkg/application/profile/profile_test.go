package profile

import (
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestThatTheDefaultProfileIsActiveWithoutAFile(t *testing.T) {
	is := is.New(t)

	reg, err := Load("")
	is.NoErr(err)
	is.Equal(reg.Active().Identifier, DefaultIdentifier)
	is.True(reg.Active().ListFeaturesInOfferings)
}

func TestReadProfiles(t *testing.T) {
	is := is.New(t)

	reg, err := Read(strings.NewReader(profilesYaml))
	is.NoErr(err)

	is.Equal(reg.Identifiers(), []string{DefaultIdentifier, "hydrology"})

	active := reg.Active()
	is.Equal(active.Identifier, "hydrology")
	is.True(active.ShowMetadataOfEmptyObservations)
	is.True(active.OverallExtrema)
	is.True(active.ReturnLatestValueIfTemporalFilterIsMissing)
	is.True(!active.ListFeaturesInOfferings) // flags that are left out are false
}

func TestActivateUnknownProfileFails(t *testing.T) {
	is := is.New(t)

	reg := NewRegistry()
	is.True(reg.Activate("nope") != nil)
	is.Equal(reg.Active().Identifier, DefaultIdentifier) // the active profile is unchanged
}

func TestUnknownKeysAreRejected(t *testing.T) {
	is := is.New(t)

	_, err := Read(strings.NewReader("activeProfile: x\nprofiles:\n  - identifier: x\n    unknownFlag: true\n"))
	is.True(err != nil)
}

func TestActiveProfileMustExist(t *testing.T) {
	is := is.New(t)

	_, err := Read(strings.NewReader("activeProfile: missing\n"))
	is.True(err != nil)
}

const profilesYaml string = `
activeProfile: hydrology
profiles:
  - identifier: hydrology
    showMetadataOfEmptyObservations: true
    overallExtrema: true
    returnLatestValueIfTemporalFilterIsMissing: true
`
