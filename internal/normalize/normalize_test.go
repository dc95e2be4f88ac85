package normalize

import (
	"testing"

	"lokerit-engine/internal/domain"
	"lokerit-engine/internal/vocab"

	"github.com/stretchr/testify/assert"
)

func TestProvince(t *testing.T) {
	n := New(nil)

	tests := []struct {
		city string
		want string
	}{
		{"Jakarta Selatan", "DKI Jakarta"},
		{"  jakarta selatan ", "DKI Jakarta"},
		{"JAKARTA UTARA", "DKI Jakarta"},
		{"Tangerang Selatan", "Banten"},
		{"Cikarang", "Jawa Barat"},
		{"Denpasar", "Bali"},
		{"Kota Bandung", "Jawa Barat"},
		{"Jakarta Selatan, DKI Jakarta", "DKI Jakarta"},
		{"Kabupaten Serang", "Banten"},
		{"Jogja", "DI Yogyakarta"},
		{"Kudus", "Jawa Tengah"},
		{"Medan", domain.ProvinceOther},
		{"", domain.ProvinceOther},
		{"Lokasi Lain", domain.ProvinceOther},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, n.Province(tt.city), tt.city)
	}
}

func TestProvinceUsesInjectedRules(t *testing.T) {
	rules := *vocab.Default()
	rules.Cities = map[string]string{"Medan": "Sumatera Utara"}
	rules.Heuristics = nil
	rules.ProvinceFallback = "Luar Jawa"

	n := New(&rules)
	assert.Equal(t, "Sumatera Utara", n.Province("medan"))
	assert.Equal(t, "Luar Jawa", n.Province("Jakarta Selatan"))
}

func TestEducation(t *testing.T) {
	n := New(nil)

	tests := []struct {
		in   string
		want string
	}{
		{"Minimal SMA/SMK sederajat", "SMA/SMK"},
		{"SMA/SMK/D3/S1", "SMA/SMK"},
		{"Diploma (D3) Teknik Informatika", "Diploma"},
		{"D3", "Diploma"},
		{"S1 Teknik Informatika", "S1"},
		{"Sarjana Komputer", "S1"},
		{"Bachelor's degree in Computer Science", "S1"},
		{"Magister", "S2"},
		{"PhD in Machine Learning", "S3"},
		{"", domain.EducationUnknown},
		{"Hidden/Tidak Disebutkan", domain.EducationUnknown},
		{"Semua jurusan", domain.EducationUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, n.Education(tt.in), tt.in)
	}
}
