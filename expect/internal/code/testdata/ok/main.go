package ok

import "fmt"

var x = 1

func launch(a, b int) int {
	return a + b
}

func caller() {
	a := 1
	result := launch(a, 2)
	fmt.Println(result, x)
}
