package utils_test

import (
	"testing"

	"homecall/utils"

	"github.com/stretchr/testify/require"
)

func TestNormalizeDate(t *testing.T) {
	got, err := utils.NormalizeDate("2030-04-01")
	require.NoError(t, err)
	require.Equal(t, "2030-04-01", got)

	got, err = utils.NormalizeDate("2030-04-01T15:04:05Z")
	require.NoError(t, err)
	require.Equal(t, "2030-04-01", got)

	_, err = utils.NormalizeDate("April 1st")
	require.Error(t, err)
}
