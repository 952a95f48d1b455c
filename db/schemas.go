package db

var schema = `
CREATE EXTENSION IF NOT EXISTS "uuid-ossp";

CREATE TABLE IF NOT EXISTS products (
	product_id UUID PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	price NUMERIC(10, 2) NOT NULL,
	stock INT NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS orders (
	order_id UUID PRIMARY KEY,
	user_id UUID NOT NULL,
	total_amount NUMERIC(10, 2) NOT NULL,
	status VARCHAR(20) NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS order_items (
	order_id UUID NOT NULL REFERENCES orders (order_id),
	line_number INT NOT NULL,
	product_id UUID NOT NULL,
	product_name VARCHAR(255) NOT NULL,
	unit_price NUMERIC(10, 2) NOT NULL,
	quantity INT NOT NULL,
	PRIMARY KEY (order_id, line_number)
);

CREATE TABLE IF NOT EXISTS order_failures (
	event_id UUID PRIMARY KEY,
	original_event_id UUID NOT NULL,
	order_id UUID NOT NULL,
	error TEXT NOT NULL,
	retry_count INT NOT NULL,
	failed_at TIMESTAMPTZ NOT NULL
);
`
