package constants

// CameraURL is the web interface served by the camera on its own access point.
const CameraURL = "http://192.168.4.1"

const ReconnectMessage = "Please connect to the camera WiFi."
