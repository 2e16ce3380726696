// Package tracker implements Trackers, which track and save data
// generated while an experiment runs
package tracker

import (
	"encoding/gob"
	"log"
	"os"

	"github.com/samuelfneumann/gotutor/metrics"
)

// Interface Tracker keeps track of experiment data and saves the data
// after the experiment has finished. Experiments send each completed
// episode's record to every registered Tracker, and each Tracker
// extracts the data it cares about.
type Tracker interface {
	Track(e metrics.Episode)
	Save()
}

// LoadData loads and returns the float64 data saved by a Tracker
func LoadData(filename string) []float64 {
	var data []float64
	load(filename, &data)
	return data
}

// LoadIntData loads and returns the int data saved by a Tracker
func LoadIntData(filename string) []int {
	var data []int
	load(filename, &data)
	return data
}

// LoadBoolData loads and returns the bool data saved by a Tracker
func LoadBoolData(filename string) []bool {
	var data []bool
	load(filename, &data)
	return data
}

// load decodes the gob file a Tracker saved into data
func load(filename string, data interface{}) {
	file, err := os.Open(filename)
	if err != nil {
		log.Fatalf("could not open data file: %v", err)
	}
	defer file.Close()

	dec := gob.NewDecoder(file)
	if err := dec.Decode(data); err != nil {
		log.Fatalf("could not decode data: %v", err)
	}
}

// save encodes a Tracker's data as a gob file
func save(filename string, data interface{}) {
	file, err := os.Create(filename)
	if err != nil {
		log.Fatalf("could not open save file: %v", err)
	}
	defer file.Close()

	en := gob.NewEncoder(file)
	if err := en.Encode(data); err != nil {
		log.Fatalf("could not encode data: %v", err)
	}
}
