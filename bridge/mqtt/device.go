package mqtt

// DeviceInfo holds the Home Assistant device registry fields shared
// across every entity published for one sinricpro device. All discovery
// payloads for the same device ID reference the same block so HA groups
// them under a single device page.
type DeviceInfo struct {
	Identifiers  []string `json:"identifiers"`
	Name         string   `json:"name"`
	Manufacturer string   `json:"manufacturer"`
	Model        string   `json:"model"`
	SWVersion    string   `json:"sw_version"`
}

// EntityConfig is the JSON payload for an HA MQTT entity discovery
// message (switch, sensor, etc. — Component picks the topic). It is
// published (retained) to the discovery topic on every broker
// (re-)connect.
type EntityConfig struct {
	Name                string     `json:"name"`
	ObjectID            string     `json:"object_id,omitempty"`
	HasEntityName       bool       `json:"has_entity_name,omitempty"`
	UniqueID            string     `json:"unique_id"`
	StateTopic          string     `json:"state_topic"`
	CommandTopic        string     `json:"command_topic,omitempty"`
	AvailabilityTopic   string     `json:"availability_topic"`
	JsonAttributesTopic string     `json:"json_attributes_topic,omitempty"`
	Device              DeviceInfo `json:"device"`
	Icon                string     `json:"icon,omitempty"`
	UnitOfMeasurement   string     `json:"unit_of_measurement,omitempty"`
	StateClass          string     `json:"state_class,omitempty"`
	DeviceClass         string     `json:"device_class,omitempty"`
	PayloadOn           string     `json:"payload_on,omitempty"`
	PayloadOff          string     `json:"payload_off,omitempty"`
}

// NewDeviceInfo builds a DeviceInfo for one sinricpro device ID.
func NewDeviceInfo(deviceID, name, sdkVersion string) DeviceInfo {
	if name == "" {
		name = deviceID
	}
	return DeviceInfo{
		Identifiers:  []string{deviceID},
		Name:         name,
		Manufacturer: "SinricPro",
		Model:        "pico-sdk device",
		SWVersion:    sdkVersion,
	}
}
