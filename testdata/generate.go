package main

import (
	"log"
	"os"

	"github.com/parquet-go/parquet-go"
)

type Purchase struct {
	Country  string  `parquet:"country"`
	Amount   float64 `parquet:"amount"`
	Discount float64 `parquet:"discount"`
}

// Regenerates purchases.parquet, the parquet twin of purchases.csv.
func main() {
	purchases := []Purchase{
		{Country: "USA", Amount: 2000, Discount: 10},
		{Country: "USA", Amount: 3500, Discount: 15},
		{Country: "USA", Amount: 3000, Discount: 20},
		{Country: "Canada", Amount: 120, Discount: 12},
		{Country: "Canada", Amount: 180, Discount: 18},
		{Country: "Canada", Amount: 3100, Discount: 0},
		{Country: "UK", Amount: 400, Discount: 25},
		{Country: "UK", Amount: 350, Discount: 20},
	}

	file, err := os.Create("purchases.parquet")
	if err != nil {
		log.Fatal(err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[Purchase](file)
	defer writer.Close()

	if _, err := writer.Write(purchases); err != nil {
		log.Fatal(err)
	}

	log.Printf("Generated purchases.parquet with %d rows", len(purchases))
}
