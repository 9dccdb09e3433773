package hwmon

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/md14454/gosensors"
)

const (
	BusTypeIsa  = 1
	BusTypePci  = 2
	BusTypeAcpi = 5
)

// TempSensor is a temperature input discovered on a hwmon chip,
// suitable for use as a file sensor path in the zone configuration.
type TempSensor struct {
	Label string
	Index int
	Input string
	Value float64
}

type HwMonChip struct {
	Name    string
	Path    string
	Sensors []TempSensor
}

// GetChips enumerates all hwmon chips with at least one temperature input.
func GetChips() []*HwMonChip {
	gosensors.Init()
	defer gosensors.Cleanup()
	chips := gosensors.GetDetectedChips()

	var list []*HwMonChip

	for i := 0; i < len(chips); i++ {
		chip := chips[i]

		sensorList := getTempSensors(chip)
		if len(sensorList) <= 0 {
			continue
		}

		list = append(list, &HwMonChip{
			Name:    computeIdentifier(chip),
			Path:    chip.Path,
			Sensors: sensorList,
		})
	}

	return list
}

func getTempSensors(chip gosensors.Chip) []TempSensor {
	var sensorList []TempSensor

	features := chip.GetFeatures()
	for j := 0; j < len(features); j++ {
		feature := features[j]

		if feature.Type != gosensors.FeatureTypeTemp {
			continue
		}

		subfeatures := feature.GetSubFeatures()
		if !containsSubFeature(subfeatures, gosensors.SubFeatureTypeTempInput) {
			continue
		}

		inputSubFeature := getSubFeature(subfeatures, gosensors.SubFeatureTypeTempInput)
		sensorInputPath := fmt.Sprintf("%s/%s", chip.Path, inputSubFeature.Name)

		sensorList = append(sensorList, TempSensor{
			Label: getLabel(chip.Path, inputSubFeature.Name),
			Index: len(sensorList) + 1,
			Input: sensorInputPath,
			Value: inputSubFeature.GetValue(),
		})
	}

	return sensorList
}

func getSubFeature(subfeatures []gosensors.SubFeature, input gosensors.SubFeatureType) gosensors.SubFeature {
	for _, subfeature := range subfeatures {
		if subfeature.Type == input {
			return subfeature
		}
	}
	panic(fmt.Errorf("no such subfeature: %v", input))
}

func containsSubFeature(subfeatures []gosensors.SubFeature, input gosensors.SubFeatureType) bool {
	for _, subfeature := range subfeatures {
		if subfeature.Type == input {
			return true
		}
	}
	return false
}

// getLabel reads the label of an input of a device
func getLabel(devicePath string, input string) string {
	labelPath := strings.TrimSuffix(devicePath+"/"+input, "input") + "label"

	content, _ := os.ReadFile(labelPath)
	label := string(content)
	if len(label) <= 0 {
		_, label = filepath.Split(devicePath)
	}
	return strings.TrimSpace(label)
}

func computeIdentifier(chip gosensors.Chip) string {
	name := chip.Prefix
	if len(name) <= 0 {
		_, name = filepath.Split(chip.Path)
	}

	switch chip.Bus.Type {
	case BusTypeIsa:
		return fmt.Sprintf("%s-isa-%d", name, chip.Bus.Nr)
	case BusTypePci:
		return fmt.Sprintf("%s-pci-%d", name, chip.Bus.Nr)
	case BusTypeAcpi:
		return fmt.Sprintf("%s-acpi-%d", name, chip.Bus.Nr)
	}
	return name
}
