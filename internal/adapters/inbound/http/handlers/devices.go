package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/architeacher/inventory/internal/domain/model"
	"github.com/architeacher/inventory/internal/usecases"
	"github.com/architeacher/inventory/internal/usecases/commands"
	"github.com/architeacher/inventory/internal/usecases/queries"
	"github.com/architeacher/inventory/pkg/logger"
	"github.com/go-chi/chi/v5"
)

const deviceIDParam = "deviceId"

type (
	deviceData struct {
		ID                string  `json:"id"`
		Name              string  `json:"name"`
		Type              string  `json:"type"`
		On                bool    `json:"on"`
		BatteryPercentage *int    `json:"batteryPercentage,omitempty"`
		OperatingSystem   *string `json:"operatingSystem,omitempty"`
		IPAddress         string  `json:"ipAddress,omitempty"`
		NetworkName       string  `json:"networkName,omitempty"`
		Record            string  `json:"record"`
	}

	deviceListData struct {
		Devices  []deviceData `json:"devices"`
		Total    int          `json:"total"`
		Capacity int          `json:"capacity"`
	}

	addDeviceRequest struct {
		Type              string  `json:"type"`
		ID                string  `json:"id"`
		Name              string  `json:"name"`
		BatteryPercentage *int    `json:"batteryPercentage,omitempty"`
		OperatingSystem   *string `json:"operatingSystem,omitempty"`
		IPAddress         string  `json:"ipAddress,omitempty"`
		NetworkName       string  `json:"networkName,omitempty"`
	}

	editDeviceRequest struct {
		ID   *string `json:"id,omitempty"`
		Name *string `json:"name,omitempty"`
	}

	DeviceHandler struct {
		app *usecases.Application
	}
)

func NewDeviceHandler(app *usecases.Application) *DeviceHandler {
	return &DeviceHandler{app: app}
}

// ListDevices supports the type, on and name query filters, all optional and combined with AND.
func (h *DeviceHandler) ListDevices(w http.ResponseWriter, r *http.Request) {
	spec, err := listSpecification(r)
	if err != nil {
		writeError(w, r, err)

		return
	}

	result, err := h.app.Queries.ListDevices.Execute(r.Context(), queries.ListDevicesQuery{Spec: spec})
	if err != nil {
		writeError(w, r, err)

		return
	}

	data := deviceListData{
		Devices:  make([]deviceData, 0, len(result.Devices)),
		Total:    result.Total,
		Capacity: result.Capacity,
	}

	for _, device := range result.Devices {
		data.Devices = append(data.Devices, toDeviceData(device))
	}

	writeData(w, r, http.StatusOK, data)
}

func (h *DeviceHandler) GetDevice(w http.ResponseWriter, r *http.Request) {
	device, err := h.app.Queries.GetDevice.Execute(r.Context(), queries.GetDeviceQuery{ID: deviceID(r)})
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeData(w, r, http.StatusOK, toDeviceData(device))
}

func (h *DeviceHandler) AddDevice(w http.ResponseWriter, r *http.Request) {
	var req addDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, r, http.StatusBadRequest, codeInvalidJSON, msgInvalidRequestBody)

		return
	}

	cmd := commands.AddDeviceCommand{
		Kind:              model.Kind(strings.ToLower(strings.TrimSpace(req.Type))),
		ID:                req.ID,
		Name:              req.Name,
		BatteryPercentage: req.BatteryPercentage,
		OperatingSystem:   req.OperatingSystem,
		IPAddress:         req.IPAddress,
		NetworkName:       req.NetworkName,
	}

	device, err := h.app.Commands.AddDevice.Handle(logger.WithDeviceID(r.Context(), req.ID), cmd)
	if err != nil {
		writeError(w, r, err)

		return
	}

	w.Header().Set("Location", "/v1/devices/"+device.ID())
	writeData(w, r, http.StatusCreated, toDeviceData(device))
}

func (h *DeviceHandler) EditDevice(w http.ResponseWriter, r *http.Request) {
	var req editDeviceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, r, http.StatusBadRequest, codeInvalidJSON, msgInvalidRequestBody)

		return
	}

	id := deviceID(r)

	device, err := h.app.Commands.EditDevice.Handle(logger.WithDeviceID(r.Context(), id), commands.EditDeviceCommand{
		ID:      id,
		NewID:   req.ID,
		NewName: req.Name,
	})
	if err != nil {
		writeError(w, r, err)

		return
	}

	writeData(w, r, http.StatusOK, toDeviceData(device))
}

func (h *DeviceHandler) RemoveDevice(w http.ResponseWriter, r *http.Request) {
	id := deviceID(r)

	_, err := h.app.Commands.RemoveDevice.Handle(logger.WithDeviceID(r.Context(), id), commands.RemoveDeviceCommand{ID: id})
	if err != nil {
		writeError(w, r, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// PowerOn answers 204 for unknown IDs as well; the inventory ignores them.
func (h *DeviceHandler) PowerOn(w http.ResponseWriter, r *http.Request) {
	id := deviceID(r)

	_, err := h.app.Commands.PowerOnDevice.Handle(logger.WithDeviceID(r.Context(), id), commands.PowerOnDeviceCommand{ID: id})
	if err != nil {
		writeError(w, r, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *DeviceHandler) PowerOff(w http.ResponseWriter, r *http.Request) {
	id := deviceID(r)

	_, err := h.app.Commands.PowerOffDevice.Handle(logger.WithDeviceID(r.Context(), id), commands.PowerOffDeviceCommand{ID: id})
	if err != nil {
		writeError(w, r, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func deviceID(r *http.Request) string {
	return chi.URLParam(r, deviceIDParam)
}

func listSpecification(r *http.Request) (model.Specification, error) {
	params := r.URL.Query()
	specs := make([]model.Specification, 0, 3)

	if values, ok := params["type"]; ok {
		kinds := make([]model.Specification, 0, len(values))

		for _, value := range values {
			kind, err := model.ParseKind(value)
			if err != nil {
				return nil, err
			}

			kinds = append(kinds, model.KindIs(kind))
		}

		specs = append(specs, model.Should(kinds...))
	}

	if value := params.Get("on"); value != "" {
		on, err := strconv.ParseBool(value)
		if err != nil {
			validationErrs := model.NewValidationErrors()
			validationErrs.Add("on", "on must be a boolean", "invalid_format")

			return nil, validationErrs
		}

		specs = append(specs, model.PoweredOn(on))
	}

	if value := params.Get("name"); value != "" {
		specs = append(specs, model.NameContains(value))
	}

	if len(specs) == 0 {
		return nil, nil
	}

	return model.Must(specs...), nil
}

func toDeviceData(device model.Device) deviceData {
	data := deviceData{
		ID:     device.ID(),
		Name:   device.Name(),
		Type:   device.Kind().String(),
		On:     device.IsOn(),
		Record: device.Encode(),
	}

	switch d := device.(type) {
	case *model.Watch:
		battery := d.Battery()
		data.BatteryPercentage = &battery
	case *model.Computer:
		if system, ok := d.OperatingSystem(); ok {
			data.OperatingSystem = &system
		}
	case *model.EmbeddedController:
		data.IPAddress = d.IPAddress()
		data.NetworkName = d.NetworkName()
	}

	return data
}
