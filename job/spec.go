package job

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// Spec describes one job to submit: the processing type, an optional
// caller-chosen name, and the parameter map. Parameters are fixed at
// submission and never mutated afterwards.
type Spec struct {
	JobType    string         `json:"job_type"`
	Name       string         `json:"name,omitempty"`
	Parameters map[string]any `json:"job_parameters"`
}

// Well-known job types.
const (
	TypeAutoRIFT = "AUTORIFT"
	TypeRTC      = "RTC_GAMMA"
	TypeInSAR    = "INSAR_GAMMA"
)

// NewAutoRIFTSpec prepares an autoRIFT job spec for a granule pair.
func NewAutoRIFTSpec(granule1, granule2, name string) Spec {
	return Spec{
		JobType: TypeAutoRIFT,
		Name:    name,
		Parameters: map[string]any{
			"granules": []string{granule1, granule2},
		},
	}
}

// RTCOptions are the recognized parameters for an RTC_GAMMA job.
type RTCOptions struct {
	// DEMMatching coregisters SAR data to the DEM rather than using dead
	// reckoning based on orbit files.
	DEMMatching           bool   `mapstructure:"dem_matching"`
	IncludeDEM            bool   `mapstructure:"include_dem"`
	IncludeIncMap         bool   `mapstructure:"include_inc_map"`
	IncludeRGB            bool   `mapstructure:"include_rgb"`
	IncludeScatteringArea bool   `mapstructure:"include_scattering_area"`
	// Radiometry is "sigma0" or "gamma0".
	Radiometry string `mapstructure:"radiometry"`
	// Resolution is the output pixel spacing in meters.
	Resolution int `mapstructure:"resolution"`
	// Scale is "amplitude" or "power".
	Scale         string `mapstructure:"scale"`
	SpeckleFilter bool   `mapstructure:"speckle_filter"`
}

// DefaultRTCOptions returns the service defaults for RTC processing.
func DefaultRTCOptions() RTCOptions {
	return RTCOptions{
		Radiometry: "gamma0",
		Resolution: 30,
		Scale:      "power",
	}
}

// NewRTCSpec prepares an RTC_GAMMA job spec for a single granule.
func NewRTCSpec(granule, name string, opts RTCOptions) (Spec, error) {
	params, err := optionsToParams(opts)
	if err != nil {
		return Spec{}, err
	}
	params["granules"] = []string{granule}
	return Spec{JobType: TypeRTC, Name: name, Parameters: params}, nil
}

// InSAROptions are the recognized parameters for an INSAR_GAMMA job.
type InSAROptions struct {
	IncludeLookVectors     bool `mapstructure:"include_look_vectors"`
	IncludeLOSDisplacement bool `mapstructure:"include_los_displacement"`
	// Looks is the range x azimuth look count, "20x4" or "10x2".
	Looks string `mapstructure:"looks"`
}

// DefaultInSAROptions returns the service defaults for InSAR processing.
func DefaultInSAROptions() InSAROptions {
	return InSAROptions{Looks: "20x4"}
}

// NewInSARSpec prepares an INSAR_GAMMA job spec for a granule pair.
func NewInSARSpec(granule1, granule2, name string, opts InSAROptions) (Spec, error) {
	params, err := optionsToParams(opts)
	if err != nil {
		return Spec{}, err
	}
	params["granules"] = []string{granule1, granule2}
	return Spec{JobType: TypeInSAR, Name: name, Parameters: params}, nil
}

// optionsToParams flattens a typed options struct into a parameter map
// keyed by the wire parameter names.
func optionsToParams(opts any) (map[string]any, error) {
	params := map[string]any{}
	if err := mapstructure.Decode(opts, &params); err != nil {
		return nil, fmt.Errorf("decode job options: %w", err)
	}
	return params, nil
}
