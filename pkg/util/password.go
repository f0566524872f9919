package util

import (
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// PasswordMinLength 密码最小长度
const PasswordMinLength = 6

// bcrypt only looks at the first 72 bytes
const passwordMaxBytes = 72

// GeneratePasswordHash generates bcrypt hash of a password
// GeneratePasswordHash 生成密码的bcrypt哈希值
func GeneratePasswordHash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash verifies whether password matches the hash
// CheckPasswordHash 验证密码与哈希值是否匹配
func CheckPasswordHash(hash, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// IsValidPassword 密码长度校验
func IsValidPassword(password string) bool {
	return utf8.RuneCountInString(password) >= PasswordMinLength && len(password) <= passwordMaxBytes
}
