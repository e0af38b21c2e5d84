// Package mqtt is an optional local bridge that mirrors device state to
// a Home-Assistant-style MQTT broker with discovery messages, so devices
// registered with a Bridge (Bridge.RegisterDevice) show up in Home
// Assistant without also talking to the cloud relay. It never implements any server-side (ws.sinric.pro)
// behavior — it is purely an additive local sink for state a Client
// already holds.
package mqtt
