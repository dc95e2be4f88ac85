package domain

type Category string

const (
	CategoryDataAI              Category = "Data / AI"
	CategorySoftwareEngineering Category = "Software Engineering"
	CategoryQA                  Category = "QA / Tester"
	CategoryDevOpsInfra         Category = "DevOps / Infra"
	CategoryProductProject      Category = "Product / Project"
	CategoryOther               Category = "Other"
)

func AllCategories() []Category {
	return []Category{
		CategoryDataAI,
		CategorySoftwareEngineering,
		CategoryQA,
		CategoryDevOpsInfra,
		CategoryProductProject,
		CategoryOther,
	}
}

func (c Category) Valid() bool {
	for _, k := range AllCategories() {
		if c == k {
			return true
		}
	}
	return false
}
