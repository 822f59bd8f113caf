package database

import (
    "context"
    "database/sql"
)

// schema holds the DDL for every table the clinic uses.  Statements are
// idempotent so EnsureSchema can run on every startup; production deploys
// normally manage the schema out of band and keep this as a safety net for
// dev environments.
var schema = []string{
    `CREATE TABLE IF NOT EXISTS users (
        id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
        username VARCHAR(64) NOT NULL UNIQUE,
        email VARCHAR(255) NOT NULL DEFAULT '',
        password_hash VARCHAR(100) NOT NULL,
        rol VARCHAR(20) NOT NULL DEFAULT 'CLIENTE',
        is_active TINYINT(1) NOT NULL DEFAULT 1,
        created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
        updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

    `CREATE TABLE IF NOT EXISTS refresh_tokens (
        id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
        user_id BIGINT UNSIGNED NOT NULL,
        token_hash CHAR(64) NOT NULL,
        expires_at DATETIME NOT NULL,
        revoked_at DATETIME NULL,
        created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
        KEY idx_refresh_user (user_id),
        KEY idx_refresh_hash (token_hash),
        CONSTRAINT fk_refresh_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

    `CREATE TABLE IF NOT EXISTS clients (
        id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
        user_id BIGINT UNSIGNED NULL,
        rut VARCHAR(12) NOT NULL UNIQUE,
        nombre VARCHAR(100) NOT NULL,
        apellido VARCHAR(100) NOT NULL,
        telefono VARCHAR(15) NOT NULL DEFAULT '',
        email VARCHAR(255) NOT NULL DEFAULT '',
        direccion TEXT,
        created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
        CONSTRAINT fk_client_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE SET NULL
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

    `CREATE TABLE IF NOT EXISTS veterinarians (
        id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
        user_id BIGINT UNSIGNED NULL,
        rut VARCHAR(12) NOT NULL UNIQUE,
        nombre VARCHAR(100) NOT NULL,
        especialidad VARCHAR(100) NOT NULL DEFAULT 'General',
        telefono VARCHAR(15) NOT NULL DEFAULT '',
        CONSTRAINT fk_vet_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE SET NULL
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

    `CREATE TABLE IF NOT EXISTS pets (
        id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
        client_id BIGINT UNSIGNED NOT NULL,
        nombre VARCHAR(100) NOT NULL,
        especie VARCHAR(20) NOT NULL DEFAULT 'Perro',
        genero VARCHAR(10) NOT NULL DEFAULT 'Macho',
        raza VARCHAR(100) NOT NULL DEFAULT '',
        fecha_nacimiento DATE NULL,
        fecha_registro DATE NOT NULL,
        observaciones TEXT,
        KEY idx_pet_client (client_id),
        CONSTRAINT fk_pet_client FOREIGN KEY (client_id) REFERENCES clients(id) ON DELETE CASCADE
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

    `CREATE TABLE IF NOT EXISTS appointments (
        id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
        vet_id BIGINT UNSIGNED NULL,
        pet_id BIGINT UNSIGNED NOT NULL,
        fecha_hora DATETIME NOT NULL,
        tipo VARCHAR(20) NOT NULL DEFAULT 'CONSULTA',
        motivo TEXT,
        estado VARCHAR(20) NOT NULL DEFAULT 'AGENDADA',
        es_urgencia TINYINT(1) NOT NULL DEFAULT 0,
        cancelled_by VARCHAR(20) NULL,
        cancel_reason TEXT NULL,
        cancelled_at DATETIME NULL,
        reschedule_reason TEXT NULL,
        last_rescheduled_at DATETIME NULL,
        created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
        updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
        KEY idx_appt_vet_time (vet_id, fecha_hora),
        KEY idx_appt_pet (pet_id),
        CONSTRAINT fk_appt_vet FOREIGN KEY (vet_id) REFERENCES veterinarians(id) ON DELETE SET NULL,
        CONSTRAINT fk_appt_pet FOREIGN KEY (pet_id) REFERENCES pets(id) ON DELETE CASCADE
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

    `CREATE TABLE IF NOT EXISTS waiting_entries (
        id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
        client_id BIGINT UNSIGNED NOT NULL,
        pet_id BIGINT UNSIGNED NULL,
        requested_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
        estado VARCHAR(20) NOT NULL DEFAULT 'ESPERANDO',
        priority VARCHAR(10) NOT NULL DEFAULT 'NORMAL',
        turn_number INT NOT NULL,
        vet_id BIGINT UNSIGNED NULL,
        service_started_at DATETIME NULL,
        preferencia TEXT,
        KEY idx_wait_requested (requested_at),
        CONSTRAINT fk_wait_client FOREIGN KEY (client_id) REFERENCES clients(id) ON DELETE CASCADE,
        CONSTRAINT fk_wait_pet FOREIGN KEY (pet_id) REFERENCES pets(id) ON DELETE SET NULL,
        CONSTRAINT fk_wait_vet FOREIGN KEY (vet_id) REFERENCES veterinarians(id) ON DELETE SET NULL
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

    `CREATE TABLE IF NOT EXISTS visits (
        id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
        appointment_id BIGINT UNSIGNED NOT NULL UNIQUE,
        fecha DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
        diagnostico TEXT NOT NULL,
        tratamiento TEXT NOT NULL,
        medicamentos TEXT,
        costo_estimado BIGINT NOT NULL DEFAULT 0,
        requiere_operacion TINYINT(1) NOT NULL DEFAULT 0,
        CONSTRAINT fk_visit_appt FOREIGN KEY (appointment_id) REFERENCES appointments(id) ON DELETE CASCADE
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

    `CREATE TABLE IF NOT EXISTS products (
        id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
        nombre VARCHAR(100) NOT NULL,
        descripcion TEXT,
        precio BIGINT NOT NULL,
        stock INT NOT NULL DEFAULT 0
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

    `CREATE TABLE IF NOT EXISTS sales (
        id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
        client_id BIGINT UNSIGNED NULL,
        receipt CHAR(36) NOT NULL UNIQUE,
        fecha DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
        total BIGINT NOT NULL DEFAULT 0,
        CONSTRAINT fk_sale_client FOREIGN KEY (client_id) REFERENCES clients(id) ON DELETE SET NULL
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

    `CREATE TABLE IF NOT EXISTS sale_items (
        id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
        sale_id BIGINT UNSIGNED NOT NULL,
        product_id BIGINT UNSIGNED NOT NULL,
        cantidad INT NOT NULL,
        precio_unitario BIGINT NOT NULL,
        KEY idx_item_sale (sale_id),
        CONSTRAINT fk_item_sale FOREIGN KEY (sale_id) REFERENCES sales(id) ON DELETE CASCADE,
        CONSTRAINT fk_item_product FOREIGN KEY (product_id) REFERENCES products(id)
    ) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates any missing tables.  Statement order matters because
// of the foreign keys.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
    for _, stmt := range schema {
        if _, err := db.ExecContext(ctx, stmt); err != nil {
            return err
        }
    }
    return nil
}
