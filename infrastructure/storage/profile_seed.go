package storage

import (
	"clinic-chat/domain/chat"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ProfileSeed is the JSON layout of a directory seed file.
type ProfileSeed struct {
	Patients  []chat.Profile `json:"patients"`
	Providers []chat.Profile `json:"providers"`
}

// SeedProfilesFromFile loads a seed file into both directories.
// The category of each entry is taken from the list holding it.
func SeedProfilesFromFile(path string, patients, providers *ProfileRepository) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("unable to open seed file: %w", err)
	}
	defer f.Close()
	return SeedProfiles(f, patients, providers)
}

func SeedProfiles(r io.Reader, patients, providers *ProfileRepository) (int, error) {
	var seed ProfileSeed
	if err := json.NewDecoder(r).Decode(&seed); err != nil {
		return 0, fmt.Errorf("unable to decode seed file: %w", err)
	}
	count := 0
	for _, p := range seed.Patients {
		p.Category = chat.CategoryPatient
		if err := patients.SaveProfile(p); err != nil {
			return count, err
		}
		count++
	}
	for _, p := range seed.Providers {
		p.Category = chat.CategoryProvider
		if err := providers.SaveProfile(p); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}
