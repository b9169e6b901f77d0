package sqlinline

const QInsertCharacter = `--sql 93eb977d-74cd-45f4-bda3-4008aeb2f8f8
insert into characters (id, name, description, appearance, personality, created_at, updated_at)
values ($1::uuid, $2::text, $3::text, $4::text, $5::text, now(), now())
returning id::text, name, description, appearance, personality, portrait_key, created_at, updated_at;
`

const QUpdateCharacter = `--sql a18a02fb-a599-4980-9fb5-f632dacf161c
update characters
set name = $2::text,
    description = $3::text,
    appearance = $4::text,
    personality = $5::text,
    updated_at = now()
where id = $1::uuid
returning id::text, name, description, appearance, personality, portrait_key, created_at, updated_at;
`

const QSelectCharacterByID = `--sql bc40c765-2136-4607-9cc8-aca06f300eb4
select id::text, name, description, appearance, personality, portrait_key, created_at, updated_at
from characters
where id = $1::uuid
limit 1;
`

const QSelectLatestCharacter = `--sql 8d7edfa4-de7c-48fc-a3e8-2cbce271fcc1
select id::text, name, description, appearance, personality, portrait_key, created_at, updated_at
from characters
order by created_at desc
limit 1;
`

const QListCharacters = `--sql 750db3ff-5ded-4ea6-8ca7-a161ca842c02
select id::text, name, description, appearance, personality, portrait_key, created_at, updated_at
from characters
order by created_at desc
limit $1::int;
`

const QDeleteCharacter = `--sql e918d98b-6871-4409-a48e-53143a440a55
delete from characters
where id = $1::uuid;
`

const QUpdateCharacterPortrait = `--sql d3577761-6530-46f2-979a-74fdfd27af84
update characters
set portrait_key = $2::text,
    updated_at = now()
where id = $1::uuid;
`
