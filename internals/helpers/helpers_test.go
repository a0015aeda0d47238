package helper

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSanitizeTitle(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Belajar Go: Dari Nol!", "Belajar_Go_Dari_Nol"},
		{"  spasi  ganda  ", "spasi_ganda"},
		{"???", "course"},
		{"", "course"},
		{"Sudah_Aman123", "Sudah_Aman123"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, SanitizeTitle(tc.in))
	}
}

func TestBuildPagination(t *testing.T) {
	p := Paging{Page: 2, PerPage: 10, Offset: 10, Limit: 10}

	out := BuildPagination(25, p, 10)
	require.Equal(t, 3, out.TotalPages)
	require.True(t, out.HasNext)
	require.True(t, out.HasPrev)

	out = BuildPagination(25, Paging{Page: 3, PerPage: 10}, 5)
	require.False(t, out.HasNext)
	require.Equal(t, 5, out.Count)

	out = BuildPagination(0, Paging{Page: 1, PerPage: 10}, 0)
	require.Equal(t, 0, out.TotalPages)
	require.False(t, out.HasNext)
	require.False(t, out.HasPrev)
}
