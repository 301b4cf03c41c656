package main

import (
	"os"
)

const fixtureHoldings = `holdings:
  - stockName: Tata Consultancy
    exchange: NSE
    symbol: TCS.NS
    sector: Tech
    purchasePrice: 3000
    quantity: 1
  - stockName: Infosys
    exchange: NSE
    symbol: INFY.NS
    sector: Tech
    purchasePrice: 1500
    quantity: 2
  - stockName: Reliance Industries
    exchange: NSE
    symbol: RELIANCE.NS
    sector: Energy
    purchasePrice: 2000
    quantity: 2
`

func writeFixtureHoldings(path string) error {
	return os.WriteFile(path, []byte(fixtureHoldings), 0o644)
}
