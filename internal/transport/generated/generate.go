package generated

//go:generate oapi-codegen --config=cfg.yaml ../../../api/openapi.yaml
