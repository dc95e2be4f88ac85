package vocab

import "lokerit-engine/internal/domain"

// Category groups are tested in this order; the first group with a matching
// keyword wins, so "Data Engineer / Backend Developer" lands in Data / AI.
var defaultCategories = []CategoryGroup{
	{Category: domain.CategoryDataAI, Keywords: []string{"data", "ai", "learning", "intelligence", "analyst", "scientist"}},
	{Category: domain.CategorySoftwareEngineering, Keywords: []string{"frontend", "backend", "fullstack", "software", "developer", "programmer", "web", "mobile", "android", "ios"}},
	{Category: domain.CategoryQA, Keywords: []string{"qa", "tester", "quality"}},
	{Category: domain.CategoryDevOpsInfra, Keywords: []string{"devops", "sre", "cloud", "system", "network", "infra", "security", "cyber"}},
	{Category: domain.CategoryProductProject, Keywords: []string{"product", "manager", "scrum", "project", "owner"}},
}

// Keys are title-cased city names.
var defaultCities = map[string]string{
	"Jakarta Raya":    "DKI Jakarta",
	"Jakarta Selatan": "DKI Jakarta",
	"Jakarta Barat":   "DKI Jakarta",
	"Jakarta Pusat":   "DKI Jakarta",
	"Jakarta Timur":   "DKI Jakarta",
	"Jakarta Utara":   "DKI Jakarta",

	"Tangerang":         "Banten",
	"Tangerang Selatan": "Banten",
	"Banten":            "Banten",

	"Bandung":  "Jawa Barat",
	"Bogor":    "Jawa Barat",
	"Depok":    "Jawa Barat",
	"Bekasi":   "Jawa Barat",
	"Cikarang": "Jawa Barat",
	"Sukabumi": "Jawa Barat",
	"Karawang": "Jawa Barat",
	"Cirebon":  "Jawa Barat",

	"Semarang":  "Jawa Tengah",
	"Solo":      "Jawa Tengah",
	"Surakarta": "Jawa Tengah",
	"Magelang":  "Jawa Tengah",

	"Yogyakarta": "DI Yogyakarta",
	"Sleman":     "DI Yogyakarta",
	"Bantul":     "DI Yogyakarta",

	"Surabaya": "Jawa Timur",
	"Malang":   "Jawa Timur",
	"Sidoarjo": "Jawa Timur",
	"Gresik":   "Jawa Timur",
	"Kediri":   "Jawa Timur",

	"Bali":     "Bali",
	"Denpasar": "Bali",
}

// Substring heuristics for cities missing from the table, checked in order.
var defaultHeuristics = []ProvinceGroup{
	{Province: "DKI Jakarta", Needles: []string{"jakarta"}},
	{Province: "Jawa Barat", Needles: []string{"bandung", "bekasi", "bogor", "depok", "cimahi", "karawang"}},
	{Province: "Banten", Needles: []string{"tangerang", "banten", "serang"}},
	{Province: "Jawa Tengah", Needles: []string{"semarang", "solo", "kudus"}},
	{Province: "Jawa Timur", Needles: []string{"surabaya", "malang", "sidoarjo", "gresik"}},
	{Province: "DI Yogyakarta", Needles: []string{"yogyakarta", "jogja", "sleman"}},
}

// Education buckets, lowest requirement first. Keywords are matched against
// the uppercased text.
var defaultEducation = []EducationBucket{
	{Label: "SMA/SMK", Any: []string{"SMA", "SMK", "STM", "HIGH SCHOOL"}},
	{Label: "Diploma", Any: []string{"DIPLOMA", "D1", "D2", "D3", "D4", "ASSOCIATE"}},
	{Label: "S1", Any: []string{"SARJANA", "S1", "BACHELOR"}},
	{Label: "S2", Any: []string{"MASTER", "S2", "MAGISTER"}},
	{Label: "S3", Any: []string{"DOKTOR", "DOCTOR", "S3", "PHD", "PH.D"}},
}
