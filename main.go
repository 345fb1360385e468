package main

import "github.com/mbRabaa/microservice-paiement/cmd"

func main() {
	cmd.Execute()
}
