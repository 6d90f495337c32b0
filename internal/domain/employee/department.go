package employee

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

type Department string

const (
	DepartmentOffice    Department = "OFFICE"
	DepartmentDriver    Department = "DRIVER"
	DepartmentWarehouse Department = "WAREHOUSE"
	DepartmentSecurity  Department = "SECURITY & CUSTODIAN"
	DepartmentFarm      Department = "FARM"
)

var Departments = []Department{
	DepartmentOffice,
	DepartmentDriver,
	DepartmentWarehouse,
	DepartmentSecurity,
	DepartmentFarm,
}

// ParseDepartment accepts any casing and spacing of a known department.
func ParseDepartment(s string) (Department, bool) {
	candidate := Department(strings.Join(strings.Fields(cases.Upper(language.Und).String(norm.NFKC.String(s))), " "))
	for _, d := range Departments {
		if d == candidate {
			return d, true
		}
	}
	return "", false
}

// Bucket is a department-keyed group in payroll views.
type Bucket string

const (
	BucketOffice    Bucket = "office"
	BucketDriver    Bucket = "driver"
	BucketWarehouse Bucket = "warehouse"
	BucketSecurity  Bucket = "security"
)

// Buckets is the display order of grouped views.
var Buckets = []Bucket{BucketOffice, BucketDriver, BucketWarehouse, BucketSecurity}

// BucketFor maps a free-form department string onto a grouped-view bucket.
// Departments matching no bucket (FARM among them) report false and are left
// out of grouped views.
func BucketFor(department string) (Bucket, bool) {
	key := cases.Lower(language.Und).String(norm.NFKC.String(strings.TrimSpace(department)))
	key = strings.ReplaceAll(key, " & ", "_")
	key = strings.ReplaceAll(key, "&", "_")
	key = strings.ReplaceAll(key, " ", "_")

	switch {
	case strings.Contains(key, "security"):
		return BucketSecurity, true
	case strings.Contains(key, "warehouse"):
		return BucketWarehouse, true
	case strings.Contains(key, "driver"):
		return BucketDriver, true
	case strings.Contains(key, "office"):
		return BucketOffice, true
	default:
		return "", false
	}
}
