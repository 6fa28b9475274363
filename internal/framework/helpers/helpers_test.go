package helpers_test

import (
	"testing"

	. "github.com/onsi/gomega"

	"github.com/nginxinc/ingress-nginx-errors/internal/framework/helpers"
)

func TestDiff(t *testing.T) {
	t.Parallel()
	type page struct {
		Name string
		Size int64
	}

	tests := []struct {
		want    page
		got     page
		name    string
		expDiff bool
	}{
		{
			name:    "equal",
			want:    page{Name: "404.html", Size: 10},
			got:     page{Name: "404.html", Size: 10},
			expDiff: false,
		},
		{
			name:    "different size",
			want:    page{Name: "404.html", Size: 10},
			got:     page{Name: "404.html", Size: 11},
			expDiff: true,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			g := NewWithT(t)

			diff := helpers.Diff(test.want, test.got)
			if test.expDiff {
				g.Expect(diff).To(HavePrefix("(-want +got)\n"))
			} else {
				g.Expect(diff).To(BeEmpty())
			}
		})
	}
}

func TestGetPointer(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	addresses := []string{":9113"}
	p := helpers.GetPointer(addresses)

	g.Expect(p).ToNot(BeNil())
	g.Expect(*p).To(Equal(addresses))
}
