package main

import "ProductAPI/cmd/productapi/cmd"

func main() {
	cmd.Execute()
}
