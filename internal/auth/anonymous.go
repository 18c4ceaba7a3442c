package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

var (
	adjectives = []string{
		"Calm", "Brave", "Gentle", "Bright", "Quiet", "Kind",
		"Swift", "Wise", "Happy", "Steady", "Warm", "Bold",
	}
	animals = []string{
		"Panda", "Otter", "Falcon", "Koala", "Dolphin", "Fox",
		"Owl", "Tiger", "Heron", "Lynx", "Robin", "Turtle",
	}
)

// AnonymousUsername returns a name like "CalmOtter0421". Uniqueness is
// checked by the caller.
func AnonymousUsername() (string, error) {
	adj, err := pick(len(adjectives))
	if err != nil {
		return "", err
	}
	animal, err := pick(len(animals))
	if err != nil {
		return "", err
	}
	n, err := pick(10000)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%s%04d", adjectives[adj], animals[animal], n), nil
}

func pick(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}
