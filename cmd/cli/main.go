// Command laptime estimates speed profiles and lap times for vehicles on a
// sampled track centerline.
//
//	laptime compare --track MoscowRaceway.csv --vehicles cars.toml
//	laptime sweep --radius 50 --spread 10
//	laptime run input.json
package main

func main() {
	Execute()
}
