package console

func objectSchema(required []string, properties map[string]any) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		req := make([]any, len(required))
		for i, r := range required {
			req[i] = r
		}
		schema["required"] = req
	}
	return schema
}

func stringProp(minLength int) map[string]any {
	prop := map[string]any{"type": "string"}
	if minLength > 0 {
		prop["minLength"] = minLength
	}
	return prop
}

func enumProp(values ...string) map[string]any {
	enum := make([]any, len(values))
	for i, v := range values {
		enum[i] = v
	}
	return map[string]any{"type": "string", "enum": enum}
}

func numberProp(minimum float64) map[string]any {
	return map[string]any{"type": "number", "minimum": minimum}
}

func integerProp(minimum int) map[string]any {
	return map[string]any{"type": "integer", "minimum": minimum}
}

var boolProp = map[string]any{"type": "boolean"}

var dateTimeProp = map[string]any{"type": "string", "format": "date-time"}

var (
	aiModelSchema = objectSchema([]string{"name", "provider", "model_id"}, map[string]any{
		"name":               stringProp(1),
		"provider":           stringProp(1),
		"model_id":           stringProp(1),
		"input_token_price":  numberProp(0),
		"output_token_price": numberProp(0),
		"is_active":          boolProp,
	})

	billingSettingSchema = objectSchema([]string{"currency", "credit_price"}, map[string]any{
		"currency":            stringProp(3),
		"credit_price":        numberProp(0),
		"token_price":         numberProp(0),
		"tax_rate":            map[string]any{"type": "number", "minimum": 0, "maximum": 100},
		"minimum_purchase":    numberProp(0),
		"free_signup_credits": integerProp(0),
		"is_active":           boolProp,
	})

	couponSchema = objectSchema([]string{"code", "discount_type", "discount_value"}, map[string]any{
		"code":           stringProp(3),
		"discount_type":  enumProp("percentage", "fixed_amount"),
		"discount_value": numberProp(0),
		"max_uses":       integerProp(0),
		"expires_at":     dateTimeProp,
		"is_active":      boolProp,
	})

	featureSchema = objectSchema([]string{"name", "slug"}, map[string]any{
		"name":        stringProp(1),
		"slug":        map[string]any{"type": "string", "pattern": "^[a-z0-9]+(?:[-_][a-z0-9]+)*$"},
		"description": stringProp(0),
		"credits":     numberProp(0),
		"is_active":   boolProp,
	})

	featurePopupSchema = objectSchema([]string{"feature_id", "title"}, map[string]any{
		"feature_id": stringProp(1),
		"title":      stringProp(1),
		"content":    stringProp(0),
		"status":     enumProp("draft", "active", "paused", "archived"),
		"starts_at":  dateTimeProp,
		"ends_at":    dateTimeProp,
	})

	featureFeedbackSchema = objectSchema(nil, map[string]any{
		"status":  enumProp("pending", "reviewed", "resolved"),
		"comment": stringProp(0),
	})

	packageSchema = objectSchema([]string{"name", "credits", "price"}, map[string]any{
		"name":          stringProp(1),
		"description":   stringProp(0),
		"credits":       numberProp(0),
		"price":         numberProp(0),
		"currency":      stringProp(3),
		"duration_days": integerProp(0),
		"is_active":     boolProp,
		"is_popular":    boolProp,
	})

	packagePlanSchema = objectSchema([]string{"package_id", "plan_id", "price"}, map[string]any{
		"package_id": stringProp(1),
		"plan_id":    stringProp(1),
		"price":      numberProp(0),
		"credits":    numberProp(0),
		"is_active":  boolProp,
	})

	paymentMethodSchema = objectSchema([]string{"name", "provider"}, map[string]any{
		"name":       stringProp(1),
		"provider":   stringProp(1),
		"type":       enumProp("card", "wallet", "bank_transfer", "crypto"),
		"currency":   stringProp(3),
		"is_active":  boolProp,
		"is_default": boolProp,
	})

	planSchema = objectSchema([]string{"name", "interval", "price"}, map[string]any{
		"name":          stringProp(1),
		"interval":      enumProp("monthly", "yearly", "lifetime"),
		"duration_days": integerProp(0),
		"price":         numberProp(0),
		"currency":      stringProp(3),
		"is_active":     boolProp,
	})

	userWalletSchema = objectSchema(nil, map[string]any{
		"credits":    numberProp(0),
		"tokens":     integerProp(0),
		"expires_at": dateTimeProp,
		"is_active":  boolProp,
	})

	userSchema = objectSchema(nil, map[string]any{
		"name":        stringProp(1),
		"role":        enumProp("user", "admin", "super_admin"),
		"status":      enumProp("active", "inactive", "blocked"),
		"is_verified": boolProp,
	})

	notificationSchema = objectSchema([]string{"user_id", "title", "message"}, map[string]any{
		"user_id": stringProp(1),
		"title":   stringProp(1),
		"message": stringProp(1),
		"type":    enumProp("info", "warning", "billing", "system"),
	})
)
