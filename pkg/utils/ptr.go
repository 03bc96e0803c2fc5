package utils

import "time"

func StringPtr(s string) *string { return &s }

func Uint64Ptr(v uint64) *uint64 { return &v }

func BoolPtr(b bool) *bool { return &b }

func TimePtr(t time.Time) *time.Time { return &t }
