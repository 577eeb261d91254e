package utils

import (
	"crypto/rand"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func CheckPassword(pw, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}

// TempPasswordLen 临时密码长度下限（也是生成长度）
const TempPasswordLen = 12

const (
	lowerChars = "abcdefghijkmnpqrstuvwxyz"
	upperChars = "ABCDEFGHJKLMNPQRSTUVWXYZ"
	digitChars = "23456789"
	allChars   = lowerChars + upperChars + digitChars
)

// NewTempPassword 生成一次性临时密码：至少各含一个大写/小写/数字
// 字符集剔除易混淆字符（0/O、1/l/I）
func NewTempPassword() (string, error) {
	buf := make([]byte, TempPasswordLen)
	pick := func(set string) (byte, error) {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(set))))
		if err != nil {
			return 0, err
		}
		return set[n.Int64()], nil
	}

	var err error
	if buf[0], err = pick(lowerChars); err != nil {
		return "", err
	}
	if buf[1], err = pick(upperChars); err != nil {
		return "", err
	}
	if buf[2], err = pick(digitChars); err != nil {
		return "", err
	}
	for i := 3; i < TempPasswordLen; i++ {
		if buf[i], err = pick(allChars); err != nil {
			return "", err
		}
	}
	// 洗牌，避免前三位固定为"小写/大写/数字"的模式
	for i := len(buf) - 1; i > 0; i-- {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", err
		}
		j := n.Int64()
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf), nil
}
