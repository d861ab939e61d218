package config

import (
	"fmt"

	"github.com/google/uuid"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// ClassViewKey returns the cache key for a class's active schedule view
func (r *CacheKeyStruct) ClassViewKey(schoolClassID, academicYearID uuid.UUID) string {
	return fmt.Sprintf("view:class:%s:%s", schoolClassID, academicYearID)
}

// TeacherViewKey returns the cache key for a teacher's agenda view
func (r *CacheKeyStruct) TeacherViewKey(teacherID, academicYearID uuid.UUID) string {
	return fmt.Sprintf("view:teacher:%s:%s", teacherID, academicYearID)
}

var CacheKey = NewCacheKeyStruct()
