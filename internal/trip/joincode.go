package trip

import "math/rand"

// joinCodeAlphabet avoids 0/O and 1/I so codes survive being read aloud
const joinCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const joinCodeLength = 6

// generateJoinCode makes a short human-shareable trip code
func generateJoinCode() string {
	code := make([]byte, joinCodeLength)
	for i := range code {
		code[i] = joinCodeAlphabet[rand.Intn(len(joinCodeAlphabet))]
	}
	return string(code)
}
