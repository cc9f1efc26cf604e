//go:build !race

package manutauth

func passwordHashCost() int {
	return 14
}
