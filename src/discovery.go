package satradio

// SDR device discovery via udev.
//
// Nobody should have to type in a device path by hand: when
// [output].output is left empty, probe udev for a matching USB device
// before failing with a resource error.

import (
	"fmt"

	"github.com/jochenvg/go-udev"
)

const (
	hackrfVendorID  = "1d50"
	hackrfProductID = "6089"

	soapySDRSubsystem = "usb"
)

// discoverHackRFDevice resolves an explicit device string, or (if empty)
// scans udev for a HackRF One by USB vendor/product ID.
func discoverHackRFDevice(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	var u udev.Udev
	var e = u.NewEnumerate()

	if err := e.AddMatchSubsystem("usb"); err != nil {
		return "", fmt.Errorf("udev: matching usb subsystem: %w", err)
	}
	if err := e.AddMatchProperty("ID_VENDOR_ID", hackrfVendorID); err != nil {
		return "", fmt.Errorf("udev: matching hackrf vendor id: %w", err)
	}
	if err := e.AddMatchProperty("ID_MODEL_ID", hackrfProductID); err != nil {
		return "", fmt.Errorf("udev: matching hackrf product id: %w", err)
	}

	var devices, devErr = e.Devices()
	if devErr != nil {
		return "", fmt.Errorf("udev: enumerating devices: %w", devErr)
	}

	if len(devices) == 0 {
		return "", fmt.Errorf("no hackrf device found on udev bus (vendor %s product %s)", hackrfVendorID, hackrfProductID)
	}

	return devices[0].Devnode(), nil
}

// discoverSoapySDRDevice resolves an explicit SoapySDR device args string,
// or (if empty) scans udev's usb subsystem and returns a best-effort
// driver args string built from the first device's bus path; that device
// is not checked to be an SDR.
func discoverSoapySDRDevice(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	var u udev.Udev
	var e = u.NewEnumerate()

	if err := e.AddMatchSubsystem(soapySDRSubsystem); err != nil {
		return "", fmt.Errorf("udev: matching usb subsystem: %w", err)
	}

	var devices, devErr = e.Devices()
	if devErr != nil {
		return "", fmt.Errorf("udev: enumerating devices: %w", devErr)
	}

	if len(devices) == 0 {
		return "", fmt.Errorf("no candidate SDR device found on udev bus")
	}

	return fmt.Sprintf("driver=soapysdr,path=%s", devices[0].Devpath()), nil
}
