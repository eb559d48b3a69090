/*
Package httpserver exposes domain provisioning over HTTP for the serve command.

A provisioning request starts a create or relayout run in the background and returns
its run id. Only one run is in flight at a time; a request made while a run is in
progress is rejected with 409 Conflict. The status endpoint reports the latest run:
its id, operation, the last workflow state reached, the completed steps and, for a
failed run, the step that halted it. When the run archived its files the status also
carries the manifest id that domainctl restore takes.

Invalid inputs are rejected with 422 Unprocessable Entity. Once the server is draining
or shutting down, provisioning requests are rejected with 503 Service Unavailable and
shutdown waits for the run in flight.

# API Endpoints

  - POST /api/v1/provision/{operation} - Start a create or relayout run
  - GET /api/v1/status - Report the latest run
  - GET /api/v1/layout - Show the paths derived from the configured inputs
  - GET /livez - Liveness check
  - GET /readyz - Readiness check
  - GET /drain - Mark server as not ready
  - GET /undrain - Mark server as ready

The body of a provisioning request may override configured inputs:

	curl -X POST http://localhost:8080/api/v1/provision/relayout -d '{"NM_MODE":"ssl"}'

Every request is logged through the flashbots httplogger middleware.
*/
package httpserver
