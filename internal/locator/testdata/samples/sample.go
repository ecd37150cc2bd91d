package demo

import "fmt"

// Greet prints a greeting for the given name.
func Greet(name string) {
	fmt.Printf("hello %s\n", name)
}

func Farewell(name string) {
	fmt.Printf("bye %s\n", name)
}
