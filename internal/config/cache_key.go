package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// DepartmentLockKey returns the key guarding membership changes of a department.
func (r *CacheKeyStruct) DepartmentLockKey(departmentID string) string {
	return fmt.Sprintf("department:%s:lock", departmentID)
}

var CacheKey = NewCacheKeyStruct()
